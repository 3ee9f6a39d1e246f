package pcl

// PageSize is a PCL page size with its portrait dimensions in millipoints.
type PageSize struct {
	Name          string
	Code          int
	Width, Height int
}

var pageSizes = []PageSize{
	{"A5", 25, 420000, 595000},
	{"Executive", 1, 522000, 756000},
	{"A4", 26, 595000, 842000},
	{"Letter", 2, 612000, 792000},
	{"Legal", 3, 612000, 1008000},
	{"A3", 27, 842000, 1191000},
	{"Ledger", 6, 792000, 1224000},
}

// tolerance of page size matching
const sizeSlack = 1000

// SelectPageSize returns the page size matching w x h in any orientation,
// otherwise the smallest one the page fits on. exact is false in the latter
// case.
func SelectPageSize(w, h int) (size PageSize, exact bool) {
	short, long := min(w, h), max(w, h)
	for _, s := range pageSizes {
		if abs(s.Width-short) <= sizeSlack && abs(s.Height-long) <= sizeSlack {
			return s, true
		}
	}
	for _, s := range pageSizes {
		if s.Width+sizeSlack >= short && s.Height+sizeSlack >= long {
			return s, false
		}
	}
	return pageSizes[len(pageSizes)-1], false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
