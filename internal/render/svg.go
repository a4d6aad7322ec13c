// Package render turns a summary into the stats badge SVG.
package render

import (
	"bytes"
	"encoding/xml"
	"strings"
	"text/template"

	"github.com/naka-gawa/github-stats-badge/internal/domain"
)

const (
	// Width and Height are the fixed badge dimensions in pixels.
	Width  = 460
	Height = 140
)

const badgeTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<svg width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}" xmlns="http://www.w3.org/2000/svg">
  <style>
    .title{font:700 18px system-ui; fill:#0f172a;}
    .label{font:600 12px system-ui; fill:#334155;}
    .value{font:700 20px system-ui; fill:#0f172a;}
    .small{font:400 11px system-ui; fill:#475569;}
  </style>
  <rect rx="10" width="100%" height="100%" fill="#f8fafc"/>
  <g transform="translate(20,20)">
    <text class="title">{{xml .S.Account}} · GitHub Stats</text>
    <g transform="translate(0,28)">
      <text class="label">Repositories</text>
      <text class="value" x="180">{{.S.TotalRepos}}</text>
      <text class="small" x="260">private: {{.S.PrivateCount}}</text>
    </g>
    <g transform="translate(0,62)">
      <text class="label">Stars</text>
      <text class="value" x="180">{{.S.Stars}}</text>
      <text class="label" x="260">Forks</text>
      <text class="value" x="330">{{.S.Forks}}</text>
    </g>
    <g transform="translate(0,96)">
      <text class="label">Followers</text>
      <text class="value" x="180">{{.S.Followers}}</text>
    </g>
  </g>
</svg>`

var badge = template.Must(template.New("badge").Funcs(template.FuncMap{"xml": escapeXML}).Parse(badgeTemplate))

type badgeData struct {
	Width  int
	Height int
	S      domain.Summary
}

// Render returns the badge document for s. Output depends only on s.
func Render(s domain.Summary) (string, error) {
	var sb strings.Builder
	if err := badge.Execute(&sb, badgeData{Width: Width, Height: Height, S: s}); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer cannot fail.
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
