// Command generate_index renders README.md into the release landing page.
//
//	go run ./scripts <dist-dir>
package main

import (
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/oakwood-commons/baiacufmt/internal/formatter"
)

var archiveRe = regexp.MustCompile(`^baiacufmt_([^_]+(?:-[^_]+)*)_(?:Darwin|Linux|Windows)_(?:arm64|x86_64)\.(?:tar\.gz|zip)$`)

// platform maps an archive name fragment to a display name.
type platform struct {
	key  string
	name string
}

var platforms = []struct {
	fragments []string
	platform
}{
	{[]string{"Darwin_arm64", "darwin_arm64"}, platform{"darwin-arm64", "macOS (Apple Silicon)"}},
	{[]string{"Darwin_x86_64", "darwin_amd64"}, platform{"darwin-amd64", "macOS (Intel)"}},
	{[]string{"Linux_arm64", "linux_arm64"}, platform{"linux-arm64", "Linux (ARM64)"}},
	{[]string{"Linux_x86_64", "linux_amd64"}, platform{"linux-amd64", "Linux (x86_64)"}},
	{[]string{"Windows_arm64", "windows_arm64"}, platform{"windows-arm64", "Windows (ARM64)"}},
	{[]string{"Windows_x86_64", "windows_amd64"}, platform{"windows-amd64", "Windows (x86_64)"}},
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <dist-dir>\n", os.Args[0])
		os.Exit(1)
	}
	distDir := os.Args[1]
	indexPath := filepath.Join(distDir, "index.html")
	if err := run("README.md", distDir, indexPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generated %s\n", indexPath)
}

func run(readmePath, distDir, indexPath string) error {
	readme, err := os.ReadFile(readmePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", readmePath, err)
	}

	var names []string
	if entries, err := os.ReadDir(distDir); err == nil {
		for _, e := range entries {
			if !e.IsDir() {
				names = append(names, e.Name())
			}
		}
	}

	body := renderMarkdown(readme)
	body = replaceInstallationSection(body, downloadsHTML(detectVersion(names), names))

	sample, err := sampleBlockHTML()
	if err != nil {
		return err
	}

	f, err := os.Create(indexPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", indexPath, err)
	}
	defer f.Close()
	return writePage(f, body, sample)
}

func renderMarkdown(src []byte) string {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock
	doc := parser.NewWithExtensions(extensions).Parse(src)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank})
	return string(markdown.Render(doc, renderer))
}

// detectVersion finds the version in archive names like
// baiacufmt_0.1.0-SNAPSHOT-abc123_Darwin_arm64.tar.gz.
func detectVersion(names []string) string {
	for _, name := range names {
		if m := archiveRe.FindStringSubmatch(name); len(m) >= 2 {
			return m[1]
		}
	}
	return "unknown"
}

func platformFor(name string) (platform, bool) {
	for _, p := range platforms {
		for _, frag := range p.fragments {
			if strings.Contains(name, frag) {
				return p.platform, true
			}
		}
	}
	return platform{}, false
}

func downloadsHTML(version string, names []string) string {
	archives := make(map[string]string)
	labels := make(map[string]string)
	for _, name := range names {
		if !strings.HasSuffix(name, ".tar.gz") && !strings.HasSuffix(name, ".zip") {
			continue
		}
		if strings.Contains(name, "SHA256") {
			continue
		}
		p, ok := platformFor(name)
		if !ok {
			continue
		}
		if _, seen := archives[p.key]; !seen {
			archives[p.key] = name
			labels[p.key] = p.name
		}
	}
	keys := make([]string, 0, len(archives))
	for k := range archives {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("  <div class=\"downloads\">\n    <h2>Downloads</h2>\n    <div class=\"version-section\">\n")
	fmt.Fprintf(&sb, "      <h3>%s</h3>\n      <table class=\"download-table\">\n", html.EscapeString(version))
	for _, k := range keys {
		fmt.Fprintf(&sb, "        <tr>\n          <td class=\"platform-name\">%s</td>\n          <td class=\"platform-links\"><a href=\"%s\">download</a></td>\n        </tr>\n",
			labels[k], html.EscapeString(archives[k]))
	}
	sb.WriteString("      </table>\n    </div>\n  </div>\n")
	return sb.String()
}

// replaceInstallationSection swaps the README install section for the
// downloads table. The page is returned unchanged when either heading is missing.
func replaceInstallationSection(page, downloads string) string {
	start := strings.Index(page, `<h2 id="install">`)
	if start == -1 {
		start = strings.Index(page, `<h2 id="installation">`)
	}
	if start == -1 {
		return page
	}
	next := strings.Index(page[start+1:], `<h2 id="`)
	if next == -1 {
		return page
	}
	next += start + 1

	replacement := `<h2 id="installation">Installation</h2>

` + downloads + `
<p>Extract the archive and move the binary to your PATH:</p>

<pre><code class="language-bash"># macOS / Linux
tar -xzf baiacufmt_*.tar.gz
sudo mv baiacufmt /usr/local/bin/

# Windows
# Extract the .zip file and add baiacufmt.exe to your PATH
</code></pre>

`
	return page[:start] + replacement + page[next:]
}

// sampleBlockHTML renders a comment block with the stock template so the
// page always shows the current box format.
func sampleBlockHTML() (string, error) {
	block, err := formatter.Assemble(formatter.Block{
		Name:        "add",
		Description: "Adds two integers and returns the sum of both operands as an int",
		ReturnType:  "int",
		Variables: []formatter.VariableEntry{
			{Name: "a", Description: "first operand"},
			{Name: "b", Description: "second operand"},
		},
	}, formatter.DefaultTemplate())
	if err != nil {
		return "", fmt.Errorf("render sample block: %w", err)
	}
	return "<h2 id=\"sample\">Sample block</h2>\n<pre><code class=\"language-c\">" + html.EscapeString(block) + "</code></pre>\n", nil
}

func writePage(w io.Writer, body, sample string) error {
	_, err := fmt.Fprintf(w, `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>baiacufmt - C function comment blocks</title>
  <style>
    body { font-family: system-ui, -apple-system, sans-serif; max-width: 900px; margin: 40px auto; padding: 0 20px; line-height: 1.6; color: #333; }
    h1 { color: #0f766e; border-bottom: 2px solid #0f766e; padding-bottom: 10px; }
    h2 { color: #115e59; margin-top: 30px; }
    code { background: #f1f5f9; padding: 2px 6px; border-radius: 3px; font-family: Monaco, Menlo, monospace; font-size: 0.9em; }
    pre { background: #1e293b; color: #e2e8f0; padding: 16px; border-radius: 6px; overflow-x: auto; }
    pre code { background: none; color: inherit; padding: 0; }
    .downloads { background: #f0fdfa; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #0f766e; }
    .version-section { margin: 15px 0; padding: 10px; background: white; border-radius: 4px; }
    .download-table { width: 100%%; border-collapse: collapse; }
    .download-table td { padding: 6px 8px; }
    .platform-name { font-weight: 500; width: 200px; }
  </style>
</head>
<body>
%s
%s</body>
</html>
`, body, sample)
	return err
}
