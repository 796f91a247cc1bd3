package content

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed pages/*.md
var pageFS embed.FS

// HeroImage is the picture shown on the home page.
const HeroImage = "https://cdn-icons-png.flaticon.com/512/1046/1046784.png"

// Document is a rendered markdown page.
type Document struct {
	Markdown string        `json:"markdown"`
	HTML     template.HTML `json:"html"`
}

// Service renders the static home and about copy once at startup.
type Service struct {
	home  Document
	about Document
}

// NewService renders the embedded pages.
func NewService() (*Service, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy := bluemonday.UGCPolicy()

	home, err := render(md, policy, "pages/home.md")
	if err != nil {
		return nil, err
	}
	about, err := render(md, policy, "pages/about.md")
	if err != nil {
		return nil, err
	}
	return &Service{home: home, about: about}, nil
}

// Home returns the welcome copy.
func (s *Service) Home() Document { return s.home }

// About returns the about copy.
func (s *Service) About() Document { return s.about }

func render(md goldmark.Markdown, policy *bluemonday.Policy, name string) (Document, error) {
	src, err := pageFS.ReadFile(name)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return Document{}, fmt.Errorf("render %s: %w", name, err)
	}

	return Document{
		Markdown: string(src),
		HTML:     template.HTML(policy.SanitizeBytes(buf.Bytes())),
	}, nil
}
