// internal/dashboard/template.go
package dashboard

// The rendered document pulls Bootstrap, jQuery, and Chart.js from the
// jsdelivr CDN at view time; offline rendering is out of scope.
const dashboardTemplateHTML = `<!DOCTYPE html>
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
      --danger: #DC2626;
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
    .chart-card {
      background: var(--background);
      border-radius: 16px;
      padding: 1.5rem;
      box-shadow: 0 1px 3px rgba(15, 23, 42, 0.1);
      border: 1px solid var(--border);
    }
    .chart-title {
      font-size: 1.5rem;
      font-weight: 700;
      color: var(--text);
      margin-bottom: 0.25rem;
    }
    .chart-subtitle {
      color: var(--secondary);
      margin-bottom: 1.5rem;
    }
    .chart-canvas {
      position: relative;
      height: 380px;
    }
    .table thead th,
    .table thead td {
      background-color: var(--light);
      color: var(--text);
      border-color: var(--border);
    }
    .badge.badge-fast {
      background-color: var(--success);
    }
    .badge.badge-medium {
      background-color: var(--warning);
      color: var(--background);
    }
    .badge.badge-slow {
      background-color: var(--danger);
    }
    .summary-stat {
      font-size: 1.75rem;
      font-weight: 700;
    }
    .summary-label {
      color: var(--secondary);
      font-size: 0.85rem;
      text-transform: uppercase;
      letter-spacing: 0.05em;
    }
    .placeholder-section {
      padding: 4rem 1rem;
      text-align: center;
      color: var(--secondary);
    }
  </style>
</head>
<body>
  <nav class="navbar navbar-dark bg-dark">
    <div class="container-fluid">
      <span class="navbar-brand mb-0 h1">{{ .Title }}</span>
      <span class="text-light">Generated: <span id="generatedAt">{{ .GeneratedAt }}</span></span>
    </div>
  </nav>
  <main class="container-fluid my-4">
{{ if .HasSamples }}
    <section>
      <div class="row g-3" id="summaryCards"></div>
    </section>

    <section class="mt-4">
      <div class="card shadow-sm chart-card">
        <div class="card-body">
          <div class="chart-title">Duration by Operation</div>
          <div class="chart-subtitle">Average, minimum, and maximum trial duration in milliseconds.</div>
          <div class="chart-canvas">
            <canvas id="durationChart" aria-label="Duration by operation chart" role="img"></canvas>
          </div>
        </div>
      </div>
    </section>

    <section class="mt-4">
      <div class="row g-3">
        <div class="col-xl-6">
          <div class="card shadow-sm chart-card">
            <div class="card-body">
              <div class="chart-title">Memory by Operation</div>
              <div class="chart-subtitle">Average heap-used delta and peak heap-total in MB.</div>
              <div class="chart-canvas">
                <canvas id="memoryChart" aria-label="Memory by operation chart" role="img"></canvas>
              </div>
            </div>
          </div>
        </div>
        <div class="col-xl-6">
          <div class="card shadow-sm chart-card">
            <div class="card-body">
              <div class="chart-title">Duration Across Trials</div>
              <div class="chart-subtitle">Trial-by-trial duration per operation.</div>
              <div class="chart-canvas">
                <canvas id="trendChart" aria-label="Duration across trials chart" role="img"></canvas>
              </div>
            </div>
          </div>
        </div>
      </div>
    </section>

    <section class="mt-4">
      <div class="card shadow-sm">
        <div class="card-header bg-white">
          <h5 class="mb-0">Samples</h5>
        </div>
        <div class="card-body">
          <div class="table-responsive">
            <table class="table table-striped table-hover table-bordered table-sm" id="samplesTable">
              <thead class="table-light">
                <tr>
                  <th>#</th>
                  <th>Operation</th>
                  <th>Duration (ms)</th>
                  <th>Memory &Delta; (MB)</th>
                  <th>Peak (MB)</th>
                  <th>Speed</th>
                  <th>Timestamp</th>
                </tr>
              </thead>
              <tbody></tbody>
            </table>
          </div>
        </div>
      </div>
    </section>
{{ else }}
    <section class="mt-4">
      <div class="card shadow-sm">
        <div class="card-body placeholder-section">
          <h4>No samples recorded</h4>
          <p class="mb-0">Run a benchmark to populate this report.</p>
        </div>
      </div>
    </section>
{{ end }}
  </main>

  <script src="https://code.jquery.com/jquery-3.7.1.min.js"></script>
  <script src="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/js/bootstrap.bundle.min.js"></script>
  <script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.2/dist/chart.umd.min.js"></script>
  <script>
    var report = {{ .ReportJSON }};
  </script>
  <script>
    (function($) {
      var palette = ['#3B82F6', '#10B981', '#F59E0B', '#8B5CF6', '#EC4899', '#14B8A6', '#F97316', '#64748B'];

      function formatNumber(value, decimals) {
        if (value === null || value === undefined || isNaN(value)) {
          return '-';
        }
        return Number(value).toFixed(decimals);
      }

      function seriesColor(index) {
        return palette[index % palette.length];
      }

      var chartState = {
        duration: null,
        memory: null,
        trend: null
      };

      function renderSummaryCards(operations, samples) {
        var totalMs = 0;
        samples.forEach(function(sample) { totalMs += sample.ms; });
        var avgMs = samples.length ? totalMs / samples.length : 0;

        var cards = [
          { label: 'Operations', value: String(operations.length) },
          { label: 'Samples', value: String(samples.length) },
          { label: 'Total Duration (ms)', value: formatNumber(totalMs, 2) },
          { label: 'Avg Duration (ms)', value: formatNumber(avgMs, 2) }
        ];

        var $row = $('#summaryCards');
        cards.forEach(function(card) {
          var $col = $('<div class="col-sm-6 col-xl-3"></div>');
          var $card = $('<div class="card shadow-sm"></div>');
          var $body = $('<div class="card-body"></div>');
          $body.append($('<div class="summary-label"></div>').text(card.label));
          $body.append($('<div class="summary-stat"></div>').text(card.value));
          $card.append($body);
          $col.append($card);
          $row.append($col);
        });
      }

      function renderDurationChart(operations) {
        var canvas = document.getElementById('durationChart');
        if (!canvas) {
          return;
        }
        var labels = operations.map(function(op) { return op.name; });
        chartState.duration = new Chart(canvas, {
          type: 'bar',
          data: {
            labels: labels,
            datasets: [
              {
                label: 'Avg (ms)',
                data: operations.map(function(op) { return op.avg_ms; }),
                backgroundColor: '#3B82F6'
              },
              {
                label: 'Min (ms)',
                data: operations.map(function(op) { return op.min_ms; }),
                backgroundColor: '#10B981'
              },
              {
                label: 'Max (ms)',
                data: operations.map(function(op) { return op.max_ms; }),
                backgroundColor: '#F59E0B'
              }
            ]
          },
          options: {
            responsive: true,
            maintainAspectRatio: false,
            scales: {
              y: { beginAtZero: true, title: { display: true, text: 'milliseconds' } }
            }
          }
        });
      }

      function renderMemoryChart(operations) {
        var canvas = document.getElementById('memoryChart');
        if (!canvas) {
          return;
        }
        chartState.memory = new Chart(canvas, {
          type: 'bar',
          data: {
            labels: operations.map(function(op) { return op.name; }),
            datasets: [
              {
                label: 'Avg heap Δ (MB)',
                data: operations.map(function(op) { return op.avg_delta_mb; }),
                backgroundColor: '#8B5CF6'
              },
              {
                label: 'Peak heap (MB)',
                data: operations.map(function(op) { return op.peak_mb; }),
                backgroundColor: '#EC4899'
              }
            ]
          },
          options: {
            responsive: true,
            maintainAspectRatio: false,
            scales: {
              y: { title: { display: true, text: 'MB' } }
            }
          }
        });
      }

      function renderTrendChart(operations) {
        var canvas = document.getElementById('trendChart');
        if (!canvas) {
          return;
        }
        var longest = 0;
        operations.forEach(function(op) {
          if (op.series_ms.length > longest) {
            longest = op.series_ms.length;
          }
        });
        var labels = [];
        for (var i = 1; i <= longest; i++) {
          labels.push('trial ' + i);
        }
        chartState.trend = new Chart(canvas, {
          type: 'line',
          data: {
            labels: labels,
            datasets: operations.map(function(op, index) {
              return {
                label: op.name,
                data: op.series_ms,
                borderColor: seriesColor(index),
                backgroundColor: seriesColor(index),
                tension: 0.2,
                fill: false
              };
            })
          },
          options: {
            responsive: true,
            maintainAspectRatio: false,
            scales: {
              y: { beginAtZero: true, title: { display: true, text: 'milliseconds' } }
            }
          }
        });
      }

      function badgeClass(speed) {
        if (speed === 'fast') {
          return 'badge badge-fast';
        }
        if (speed === 'medium') {
          return 'badge badge-medium';
        }
        return 'badge badge-slow';
      }

      function renderSamplesTable(samples) {
        var $tbody = $('#samplesTable tbody');
        if (!$tbody.length) {
          return;
        }
        samples.forEach(function(sample, index) {
          var $tr = $('<tr></tr>');
          $tr.append($('<td></td>').text(index + 1));
          $tr.append($('<td></td>').text(sample.operation));
          $tr.append($('<td></td>').text(formatNumber(sample.ms, 2)));
          $tr.append($('<td></td>').text(formatNumber(sample.delta_mb, 2)));
          $tr.append($('<td></td>').text(formatNumber(sample.peak_mb, 2)));
          $tr.append($('<td></td>').append($('<span></span>').attr('class', badgeClass(sample.class)).text(sample.class)));
          $tr.append($('<td></td>').text(sample.timestamp));
          $tbody.append($tr);
        });
      }

      $(function() {
        var operations = report && report.operations ? report.operations : [];
        var samples = report && report.samples ? report.samples : [];
        if (!samples.length) {
          return;
        }
        renderSummaryCards(operations, samples);
        renderDurationChart(operations);
        renderMemoryChart(operations);
        renderTrendChart(operations);
        renderSamplesTable(samples);
      });
    })(jQuery);
  </script>
</body>
</html>
`
