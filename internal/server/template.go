package server

import (
	"fmt"
	"html/template"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/explorer"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/review"
)

var pageFuncs = template.FuncMap{
	"pct1": func(p float64) string { return fmt.Sprintf("%.1f%%", p) },
	"pct2": explorer.FormatPercent,
	"share": func(f float64) string {
		return fmt.Sprintf("%.1f%%", f*100)
	},
	"barWidth": func(count, max int) string {
		if max <= 0 {
			return "0%"
		}
		return fmt.Sprintf("%.1f%%", float64(count)/float64(max)*100)
	},
	"fontSize": func(weight float64) string {
		return fmt.Sprintf("%.2frem", 0.8+weight*1.6)
	},
	"color": func(s review.Sentiment) template.CSS {
		if c, ok := sentimentColors[s]; ok {
			return template.CSS("color: " + c)
		}
		return template.CSS("color: inherit")
	},
	"inc":           func(i int) int { return i + 1 },
	"msgNoReviews":  func() string { return explorer.NoReviewsMessage },
	"msgNoWords":    func() string { return explorer.NoWordsMessage },
	"msgNoCloud":    func() string { return explorer.NoCloudMessage },
	"msgNoNegative": func() string { return explorer.NoNegativeMessage },
	"msgNoPerfect":  func() string { return explorer.NoPerfectMessage },
}

var pageTemplate = template.Must(template.New("page").Funcs(pageFuncs).Parse(pageHTML))

const pageHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Google Play Review Sentiment</title>
<style>
body { font-family: system-ui, sans-serif; margin: 0; display: flex; color: #222; }
aside { width: 260px; padding: 1rem; background: #f5f6f8; min-height: 100vh; box-sizing: border-box; }
main { flex: 1; padding: 1rem 2rem; }
h1 { font-size: 1.5rem; }
.metrics { display: flex; gap: 2rem; }
.metric b { display: block; font-size: 1.6rem; }
.pie { width: 180px; height: 180px; border-radius: 50%; }
.legend span { margin-right: 1rem; }
.bars div { margin: 2px 0; }
.bars .fill { display: inline-block; height: 0.9rem; background: #4a78c2; vertical-align: middle; }
.cloud span { margin: 0 0.3rem; display: inline-block; }
.panel-error { color: #b00; }
.placeholder { color: #777; font-style: italic; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ddd; padding: 4px 8px; text-align: left; }
</style>
</head>
<body>
<aside>
<form method="get" action="/">
<input type="hidden" name="sentiment_set" value="1">
<label for="app">App</label><br>
<select id="app" name="app">
{{- range .Apps}}
<option value="{{.}}"{{if eq . $.D.Filter.App}} selected{{end}}>{{.}}</option>
{{- end}}
</select>
<p>Sentiment</p>
{{- range .Labels}}
<label><input type="checkbox" name="sentiment" value="{{.}}"{{if index $.Checked .}} checked{{end}}> {{.}}</label><br>
{{- end}}
<p><label for="keyword">Keyword</label><br>
<input id="keyword" type="text" name="keyword" value="{{.D.Filter.Keyword}}"></p>
<button type="submit">Apply</button>
</form>
</aside>
<main>
<h1>Google Play Review Sentiment</h1>
<p>Dataset: {{.D.Dataset}}</p>
{{- with .D.Overview}}
<section>
<h2>Overview</h2>
{{- if .Error}}<p class="panel-error">{{.Error}}</p>
{{- else if eq .Summary.Total 0}}<p class="placeholder">{{msgNoReviews}}</p>
{{- else}}
<div class="metrics">
<div class="metric">Total reviews<b>{{.Summary.Total}}</b></div>
<div class="metric">% Positive<b>{{pct1 .Summary.PositivePct}}</b></div>
<div class="metric">% Negative<b>{{pct1 .Summary.NegativePct}}</b></div>
</div>
<h3>Sentiment distribution</h3>
<div class="pie" style="{{$.Pie}}"></div>
<div class="legend">
{{- range .Distribution}}
<span style="{{color .Sentiment}}">&#9679; {{.Sentiment}} {{.Count}} ({{share .Share}})</span>
{{- end}}
</div>
{{- end}}
</section>
{{- end}}
{{- with .D.Words}}
<section>
<h2>Top words</h2>
{{- if .Error}}<p class="panel-error">{{.Error}}</p>
{{- else if .Frequency.Insufficient}}<p class="placeholder">{{msgNoWords}}</p>
{{- else}}
<div class="bars">
{{- range .Frequency.Words}}
<div><code>{{.Word}}</code> <span class="fill" style="width: {{barWidth .Count $.WordMax}}"></span> {{.Count}}</div>
{{- end}}
</div>
{{- end}}
<h2>Positive word cloud</h2>
{{- if .Error}}
{{- else if .Cloud.Insufficient}}<p class="placeholder">{{msgNoCloud}}</p>
{{- else}}
<div class="cloud">
{{- range .Cloud.Words}}
<span style="font-size: {{fontSize .Weight}}">{{.Word}}</span>
{{- end}}
</div>
{{- end}}
</section>
{{- end}}
{{- with .D.Samples}}
<section>
<details>
<summary>Sample reviews ({{len .Rows}} of {{.Total}})</summary>
{{- if .Error}}<p class="panel-error">{{.Error}}</p>
{{- else if eq .Total 0}}<p class="placeholder">{{msgNoReviews}}</p>
{{- else}}
<table>
<tr><th>Translated_Review</th><th>Sentiment</th></tr>
{{- range .Rows}}
<tr><td>{{.Review}}</td><td>{{.Sentiment}}</td></tr>
{{- end}}
</table>
{{- end}}
</details>
</section>
{{- end}}
{{- with .D.Insights}}
<section>
<h2>Top {{len .TopNegative}} apps by negative review share</h2>
{{- if .Error}}<p class="panel-error">{{.Error}}</p>
{{- else if not .TopNegative}}<p class="placeholder">{{msgNoNegative}}</p>
{{- else}}
<table>
<tr><th>#</th><th>App</th><th>Negative</th><th>Reviews</th><th>Share</th></tr>
{{- range $i, $a := .TopNegative}}
<tr><td>{{inc $i}}</td><td>{{$a.App}}</td><td>{{$a.Negative}}</td><td>{{$a.Total}}</td><td>{{pct2 $a.Percent}}</td></tr>
{{- end}}
</table>
{{- end}}
<h2>Apps with only positive reviews (at least {{.MinReviews}})</h2>
{{- if .Error}}
{{- else if not .PerfectPositive}}<p class="placeholder">{{msgNoPerfect}}</p>
{{- else}}
<table>
<tr><th>App</th><th>Reviews</th></tr>
{{- range .PerfectPositive}}
<tr><td>{{.App}}</td><td>{{.Reviews}}</td></tr>
{{- end}}
</table>
{{- end}}
</section>
{{- end}}
</main>
</body>
</html>
`
