// Package common keeps enumerations shared by configuration and the
// rendering packages, separated so that format packages do not depend on
// configuration loading.
package common

// Specification of requested output type.
// ENUM(ps, pcl, if)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtPs:
		return ".ps"
	case OutputFmtPcl:
		return ".pcl"
	case OutputFmtIf:
		return ".if.xml"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// Trade-off between output quality and speed for PCL painting.
// ENUM(speed, quality)
type PCLRenderingMode int

// How text is put on PCL pages.
// ENUM(auto, bitmap)
type PCLTextRendering int
