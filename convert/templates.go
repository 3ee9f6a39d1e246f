package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/beevik/etree"
	sprig "github.com/go-task/slim-sprig/v3"

	"arender/common"
	"arender/config"
)

// Values is a struct that holds variables we make available for template
// expansion.
type Values struct {
	Context    string
	Title      string
	Language   string
	Pages      int
	Format     string
	SourceFile string
	JobID      string
}

// describe collects template values from parsed input without building the
// area tree. Title is the first bookmark title.
func describe(doc *etree.Document, kind inputKind, src, jobID string, format common.OutputFmt) Values {
	v := Values{
		Format:     format.String(),
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		JobID:      jobID,
	}
	root := doc.Root()
	if root == nil {
		return v
	}
	switch kind {
	case inputAreaTree:
		v.Pages = len(root.FindElements("//pageViewport"))
		if seq := root.FindElement("//pageSequence[@language]"); seq != nil {
			v.Language = seq.SelectAttrValue("language", "")
		}
	case inputIntermediate:
		v.Pages = len(root.FindElements("//page"))
		if seq := root.FindElement("//page-sequence[@xml:lang]"); seq != nil {
			v.Language = seq.SelectAttrValue("xml:lang", "")
		}
	}
	if bm := root.FindElement("//bookmark[@title]"); bm != nil {
		v.Title = bm.SelectAttrValue("title", "")
	}
	return v
}

func expandTemplate(v Values, name config.TemplateFieldName, field string) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	v.Context = string(name)
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
