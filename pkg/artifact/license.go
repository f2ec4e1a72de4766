package artifact

import (
	"embed"
	"strings"
)

//go:embed licenses/*.txt
var licenseFS embed.FS

// License is the attribution text of one upstream source.
type License struct {
	Source string
	Text   string
}

var attributions = map[string]struct{ name, file string }{
	"hspell":     {"Hspell", "licenses/hspell.txt"},
	"wiktionary": {"Wiktionary", "licenses/wikimedia.txt"},
	"wikipedia":  {"Wikipedia", "licenses/wikimedia.txt"},
	"wordnet":    {"Hebrew Wordnet", "licenses/wordnet.txt"},
}

// Attribution returns the bundled license of a source kind.
func Attribution(kind string) (License, bool) {
	a, ok := attributions[kind]
	if !ok {
		return License{}, false
	}
	text, err := licenseFS.ReadFile(a.file)
	if err != nil {
		return License{}, false
	}
	return License{Source: a.name, Text: string(text)}, true
}

var rule = strings.Repeat("=", 80)

// LicenseText renders the LICENSE artifact. A single source is written verbatim; several
// sources get a header listing them, then every text between 80-column rules.
func LicenseText(licenses []License) string {
	switch len(licenses) {
	case 0:
		return ""
	case 1:
		return licenses[0].Text
	}

	var b strings.Builder
	b.WriteString("The words in this list were retrieved from the following open-source sources:\n")
	for _, l := range licenses {
		b.WriteString(" - " + l.Source + "\n")
	}
	b.WriteString("\n" + rule + "\n\n")
	for _, l := range licenses {
		b.WriteString("License text for " + l.Source + ":\n")
		b.WriteString(strings.TrimRight(l.Text, "\n"))
		b.WriteString("\n\n" + rule + "\n\n")
	}
	return b.String()
}
