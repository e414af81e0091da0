package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FSDriver materializes request documents as Markdown files under Root,
// one directory per tag, one file per endpoint.
type FSDriver struct {
	// Root is the output directory; created on first materialization
	Root string
	// Overwrite permits replacing an existing artifact. When false, a
	// collision fails the endpoint and the run moves on.
	Overwrite bool
}

// NewFSDriver creates a driver writing under root.
func NewFSDriver(root string) *FSDriver {
	return &FSDriver{Root: root}
}

// ArtifactPath returns where the request document for req would land.
func (d *FSDriver) ArtifactPath(req Request) string {
	name := strings.ToLower(req.Endpoint.Verb) + "_" + pathSlug(req.Endpoint.Path) + ".md"
	return filepath.Join(d.Root, dirSlug(req.Endpoint.Tag), name)
}

// Materialize implements Driver.
func (d *FSDriver) Materialize(ctx context.Context, req Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target := d.ArtifactPath(req)
	if !d.Overwrite && d.FileExists(target) {
		return fmt.Errorf("artifact %s already exists", target)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("creating collection directory: %w", err)
	}
	return os.WriteFile(target, []byte(renderMarkdown(req)), 0o600)
}

// DirExists implements Driver.
func (d *FSDriver) DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FileExists implements Driver.
func (d *FSDriver) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// renderMarkdown turns the block list into a Markdown request document.
func renderMarkdown(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", req.Title)

	for _, block := range req.Blocks {
		switch block.Kind {
		case BlockMethod:
			fmt.Fprintf(&b, "\n**Method:** `%s`\n", block.Text)
		case BlockURL:
			fmt.Fprintf(&b, "\n**URL:** `%s`\n", block.Text)
		case BlockHeaders:
			b.WriteString("\n## Headers\n\n")
			writeParamTable(&b, block.Rows)
		case BlockQuery:
			b.WriteString("\n## Query Parameters\n\n")
			writeParamTable(&b, block.Rows)
		case BlockRequestBody:
			fmt.Fprintf(&b, "\n## Request Body (%s)\n\n", block.MediaType)
			writeExample(&b, block.Value)
		case BlockResponse:
			fmt.Fprintf(&b, "\n## Response %s (%s)\n\n", block.Status, block.MediaType)
			writeExample(&b, block.Value)
		}
	}
	return b.String()
}

func writeParamTable(b *strings.Builder, rows []ParamRow) {
	b.WriteString("| Name | Required | Description | Example |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, row := range rows {
		required := "no"
		if row.Required {
			required = "yes"
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n",
			row.Name, required, row.Description, exampleCell(row.Example))
	}
}

func exampleCell(v any) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

func writeExample(b *strings.Builder, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		data = []byte("null")
	}
	b.WriteString("```json\n")
	b.Write(data)
	b.WriteString("\n```\n")
}

// pathSlug flattens a URL path into a filename-safe slug:
// "/pets/{id}" becomes "pets_id".
func pathSlug(path string) string {
	replacer := strings.NewReplacer("{", "", "}", "", "/", "_")
	slug := replacer.Replace(strings.Trim(path, "/"))
	if slug == "" {
		return "root"
	}
	return slug
}

// dirSlug flattens a tag label into a directory-safe name.
func dirSlug(tag string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, tag)
	if slug == "" {
		return "untagged"
	}
	return slug
}

var _ Driver = (*FSDriver)(nil)
