package render

// viewTemplates maps view names to their table-fragment templates. Each
// template receives the module's record slice.
var viewTemplates = map[string]string{
	"campaigns": `<table class="list-view" data-module="campaigns">
<thead><tr><th>Name</th><th>Type</th><th>Status</th><th>Start</th><th>End</th><th>Budget</th><th>Used</th></tr></thead>
<tbody>
{{- range . }}
<tr data-id="{{ .ID }}"{{ if .OverBudget }} class="over-budget"{{ end }}>
<td>{{ .Name }}</td><td>{{ .Type }}</td><td><span class="status status-{{ .Status }}">{{ .Status }}</span></td>
<td>{{ shortDate .StartDate }}</td><td>{{ shortDate .EndDate }}</td>
<td>{{ money .Budget }}</td><td>{{ money .BudgetUsed }}</td>
</tr>
{{- end }}
</tbody>
</table>`,

	"content": `<table class="list-view" data-module="content">
<thead><tr><th>Name</th><th>Category</th><th>Size</th><th>Status</th><th>Version</th><th>Tags</th></tr></thead>
<tbody>
{{- range . }}
<tr data-id="{{ .ID }}">
<td>{{ .Name }}</td><td>{{ .Category }}</td><td>{{ .Size }}</td>
<td><span class="status status-{{ .Status }}">{{ .Status }}</span></td>
<td>v{{ .Version }}</td><td>{{ join .Tags " " }}</td>
</tr>
{{- end }}
</tbody>
</table>`,

	"segments": `<table class="list-view" data-module="segments">
<thead><tr><th>Name</th><th>Type</th><th>Size</th><th>Status</th><th>Engagement</th><th>Location</th></tr></thead>
<tbody>
{{- range . }}
<tr data-id="{{ .ID }}">
<td>{{ .Name }}</td><td>{{ .Type }}</td><td>{{ .Size }}</td>
<td><span class="status status-{{ .Status }}">{{ .Status }}</span></td>
<td>{{ pct .EngagementRate }}</td><td>{{ .Criteria.Location }}</td>
</tr>
{{- end }}
</tbody>
</table>`,

	"events": `<table class="list-view" data-module="events">
<thead><tr><th>Title</th><th>Type</th><th>Date</th><th>Location</th><th>Registrations</th><th>Status</th></tr></thead>
<tbody>
{{- range . }}
<tr data-id="{{ .ID }}"{{ if .OverCapacity }} class="over-capacity"{{ end }}>
<td>{{ .Title }}</td><td>{{ .Type }}</td><td>{{ shortDate .Date }}</td><td>{{ .Location }}</td>
<td>{{ .Registrations }}/{{ .Capacity }}</td>
<td><span class="status status-{{ .Status }}">{{ .Status }}</span></td>
</tr>
{{- end }}
</tbody>
</table>`,

	"surveys": `<table class="list-view" data-module="surveys">
<thead><tr><th>Name</th><th>Type</th><th>Status</th><th>Responses</th><th>Completion</th><th>Avg Rating</th></tr></thead>
<tbody>
{{- range . }}
<tr data-id="{{ .ID }}">
<td>{{ .Name }}</td><td>{{ .Type }}</td>
<td><span class="status status-{{ .Status }}">{{ .Status }}</span></td>
<td>{{ .Responses }}</td><td>{{ pct .CompletionRate }}</td><td>{{ printf "%.1f" .AvgRating }}</td>
</tr>
{{- end }}
</tbody>
</table>`,

	"integrations": `<table class="list-view" data-module="integrations">
<thead><tr><th>Name</th><th>Type</th><th>System</th><th>Status</th><th>Last Sync</th><th>Data Points</th></tr></thead>
<tbody>
{{- range . }}
<tr data-id="{{ .ID }}">
<td>{{ .Name }}</td><td>{{ .Type }}</td><td>{{ .System }}</td>
<td><span class="status status-{{ .Status }}">{{ .Status }}</span></td>
<td>{{ shortDatePtr .LastSync }}</td><td>{{ join .DataPoints ", " }}</td>
</tr>
{{- end }}
</tbody>
</table>`,
}
