// internal/render/template.go
package render

const pageTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <style>
    :root {
      --primary: #334155;
      --secondary: #64748B;
      --accent: #3B82F6;
      --light: #F1F5F9;
      --background: #FFFFFF;
      --text: #0F172A;
      --success: #10B981;
      --warning: #F59E0B;
      --border: #E2E8F0;
    }
    body {
      background-color: var(--light);
      color: var(--text);
    }
    .navbar-dark {
      background-color: var(--primary) !important;
    }
    .card {
      border: 1px solid var(--border);
      background-color: var(--background);
    }
    .metric-label {
      color: var(--secondary);
      font-size: 0.85rem;
      text-transform: uppercase;
      letter-spacing: 0.04em;
    }
    .metric-value {
      font-size: 1.75rem;
      font-weight: 700;
    }
    .example-badge {
      background-color: var(--warning);
      color: var(--text);
    }
    .claim {
      text-align: center;
      color: var(--success);
      font-weight: 700;
    }
    .figure-card img {
      max-width: 600px;
      width: 100%;
    }
    .arrow {
      font-weight: 700;
      margin-right: 0.5rem;
    }
  </style>
</head>
<body>
  <nav class="navbar navbar-dark mb-4">
    <div class="container">
      <span class="navbar-brand mb-0 h1">{{ .Title }}</span>
      {{ if .ExampleData }}<span class="badge example-badge" id="example-data">Example data</span>{{ end }}
    </div>
  </nav>
  <main class="container">
    {{ if .ExampleData }}
    <div class="alert alert-warning" role="status">
      Showing built-in example metrics{{ if .ArtifactPath }}: no usable artifact at <code>{{ .ArtifactPath }}</code>{{ end }}.
      {{ if .Diagnostic }}<div class="small mt-1">{{ .Diagnostic }}</div>{{ end }}
    </div>
    {{ end }}

    <section class="mb-4">{{ .Intro }}</section>

    <h2>Model Performance</h2>
    <div class="row g-3 mb-3">
      <div class="col-md-3"><div class="card p-3"><div class="metric-label">Model</div><div class="metric-value" id="model-name">{{ .ModelName }}</div></div></div>
      <div class="col-md-3"><div class="card p-3"><div class="metric-label">Overall Model's Absolute Error (MAE)</div><div class="metric-value" id="mae">{{ .MAE }}</div></div></div>
      <div class="col-md-3"><div class="card p-3"><div class="metric-label">R²</div><div class="metric-value" id="r2">{{ .R2 }}</div></div></div>
      <div class="col-md-3"><div class="card p-3"><div class="metric-label">Binned accuracy</div><div class="metric-value" id="binned-accuracy">{{ .BinnedAccuracy }}</div></div></div>
    </div>
    <p class="text-muted">RMSE: {{ .RMSE }}</p>
    <div class="alert alert-info">{{ .Framing }}</div>

    <h2>Model Bias Evaluation (Binned LOS)</h2>
    <section class="mb-3">{{ .Bias }}</section>
    {{ range .Figures }}{{ if ne .Name "feature_importance_visual.png" }}
    <div class="figure-card mb-3">
      {{ if .Loadable }}<figure><img src="{{ .Src }}" alt="{{ .Caption }}"><figcaption class="text-muted">{{ .Caption }}</figcaption></figure>
      {{ else if .Error }}<div class="alert alert-warning">{{ .Error }}</div>
      {{ else }}<div class="alert alert-info">{{ .Hint }}</div>{{ end }}
    </div>
    {{ end }}{{ end }}

    <h3>Evidence → Interpretation → Action</h3>
    <div class="row g-3 mb-4">
      <div class="col-md-4">{{ .Evidence }}</div>
      <div class="col-md-4">{{ .Interpretation }}</div>
      <div class="col-md-4">{{ .Action }}</div>
    </div>

    {{ if .HasBinMetrics }}
    <h3>Binned Classification Metrics</h3>
    <table class="table table-sm table-bordered w-auto" id="bin-summary">
      <thead><tr><th>Metric</th><th>Score</th></tr></thead>
      <tbody>{{ range .Summary }}<tr><td>{{ .Metric }}</td><td>{{ .Score }}</td></tr>{{ end }}</tbody>
    </table>
    {{ end }}

    <h3>Per-bin Scores and Errors</h3>
    <table class="table table-sm table-striped table-bordered" id="per-bin">
      <thead><tr><th>Bin</th><th>Precision</th><th>Recall</th><th>F1</th><th>MAE</th><th>Median AE</th><th>P90 AE</th></tr></thead>
      <tbody>{{ range .Classes }}<tr><td>{{ .Bin }}</td><td>{{ .Precision }}</td><td>{{ .Recall }}</td><td>{{ .F1 }}</td><td>{{ .MAE }}</td><td>{{ .MedianAE }}</td><td>{{ .P90AE }}</td></tr>{{ end }}</tbody>
    </table>

    <h3>Contextualized Model Insights</h3>
    {{ range .Insights }}<div class="alert alert-{{ if eq .Kind "warning" }}warning{{ else if eq .Kind "success" }}success{{ else }}info{{ end }}">{{ .Body }}</div>{{ end }}
    <p class="small text-muted">Takeaway: {{ .Takeaway }}</p>

    <h2>Top Predictors of LOS</h2>
    <section>{{ .PredictorsNote }}</section>
    {{ range .Figures }}{{ if eq .Name "feature_importance_visual.png" }}
    <div class="figure-card mb-3">
      {{ if .Loadable }}<figure><img src="{{ .Src }}" alt="Feature importance"><figcaption class="text-muted">{{ .Caption }}</figcaption></figure>
      {{ else if .Error }}<div class="alert alert-warning">{{ .Error }}</div>
      {{ else }}<div class="alert alert-info">{{ .Hint }}</div>{{ end }}
    </div>
    {{ end }}{{ end }}
    {{ if .Predictors }}
    <ul class="list-group mb-4" id="predictors">
      {{ range .Predictors }}<li class="list-group-item"><span><span class="arrow">{{ .Arrow }}</span><strong>{{ .Feature }}</strong></span><span>{{ .Effect }}</span></li>{{ end }}
    </ul>
    {{ end }}

    <div class="alert alert-success">{{ .Outcome }}</div>

    <h2>Key Insights &amp; Next Steps</h2>
    {{ if .AccuracyClaim }}<h2 class="claim my-4">{{ .AccuracyClaim }}</h2>{{ end }}
    <section class="mb-4">{{ .Recommendation }}</section>
  </main>
  <script>
    window.losReport = {{ .ReportJSON }};
  </script>
</body>
</html>
`
