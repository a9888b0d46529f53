// Package split cuts the combined HATVP declarations export into one file
// per declaration, named <uuid>-<declarationVersion>.xml.
package split

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/hatvp-dataviz/internal/xmlrec"
)

const (
	tagDeclarations = "declarations"
	tagUUID         = "uuid"
	tagVersion      = "declarationVersion"
)

// Stats summarises one split.
type Stats struct {
	Declarations int
	Written      int
	Skipped      int
}

// Splitter writes declarations into a directory.
type Splitter struct {
	outDir string
	logger *slog.Logger
}

// NewSplitter creates a new declaration splitter
func NewSplitter(outDir string, logger *slog.Logger) *Splitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Splitter{outDir: outDir, logger: logger}
}

// SplitFile splits the export at path. Declarations without uuid or
// version are counted as skipped; existing files are overwritten.
func (s *Splitter) SplitFile(path string) (Stats, error) {
	doc, err := xmlrec.ReadFile(path)
	if err != nil {
		return Stats{}, err
	}
	return s.Split(doc)
}

// Split writes every declaration of doc, nested or not, in document order.
func (s *Splitter) Split(doc *xmlrec.Document) (Stats, error) {
	var stats Stats

	if err := os.MkdirAll(s.outDir, 0755); err != nil {
		return stats, fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, decl := range xmlrec.IterLocal(doc.Root, xmlrec.TagDeclaration) {
		stats.Declarations++

		name, ok := fileName(decl)
		if !ok {
			s.logger.Debug("declaration without uuid or version", "source", doc.Name, "index", stats.Declarations)
			stats.Skipped++
			continue
		}

		if err := write(filepath.Join(s.outDir, name), decl); err != nil {
			return stats, err
		}
		stats.Written++
		if stats.Written%1000 == 0 {
			s.logger.Info("splitting", "written", stats.Written)
		}
	}

	s.logger.Info("split complete", "declarations", stats.Declarations, "written", stats.Written, "skipped", stats.Skipped)
	return stats, nil
}

// fileName builds <uuid>-<version>.xml from the direct children of decl.
func fileName(decl *etree.Element) (string, bool) {
	uuid := xmlrec.LocalText(decl, tagUUID)
	version := xmlrec.LocalText(decl, tagVersion)
	if uuid == "" || version == "" {
		return "", false
	}
	name := uuid + "-" + version + ".xml"
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", false
	}
	return name, true
}

// write stores a copy of decl wrapped in <declarations>. Namespace
// declarations inherited from ancestors are carried over to the copy.
func write(path string, decl *etree.Element) error {
	out := etree.NewDocument()
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	out.CreateCharData("\n")

	wrapper := out.CreateElement(tagDeclarations)
	copied := decl.Copy()
	for parent := decl.Parent(); parent != nil; parent = parent.Parent() {
		for _, attr := range parent.Attr {
			if !isNamespaceDecl(attr) || copied.SelectAttr(attr.FullKey()) != nil {
				continue
			}
			copied.CreateAttr(attr.FullKey(), attr.Value)
		}
	}
	wrapper.AddChild(copied)

	if err := out.WriteToFile(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func isNamespaceDecl(attr etree.Attr) bool {
	return attr.Space == "xmlns" || (attr.Space == "" && attr.Key == "xmlns")
}
