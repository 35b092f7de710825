package showdash

// indexPage is the dashboard shell. It is a static page; all data comes
// from /api/show as one json payload and is rendered client side.
const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>seriescope</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.3/dist/chart.umd.min.js"></script>
<style>
  :root { --bg: #101418; --card: #1a2028; --text: #e6e9ed; --muted: #8a94a3; --accent: #f5c518; }
  * { box-sizing: border-box; }
  body { margin: 0; background: var(--bg); color: var(--text); font-family: -apple-system, "Segoe UI", Roboto, sans-serif; }
  .wrap { max-width: 1100px; margin: 0 auto; padding: 24px 16px 64px; }
  h1 { font-size: 1.4rem; } h1 span { color: var(--accent); }
  form { display: flex; gap: 8px; margin: 16px 0 24px; }
  input[type=url] { flex: 1; padding: 10px 12px; border-radius: 6px; border: 1px solid #2c3440; background: var(--card); color: var(--text); }
  button { padding: 10px 18px; border: 0; border-radius: 6px; background: var(--accent); color: #101418; font-weight: 600; cursor: pointer; }
  button:disabled { opacity: .5; cursor: wait; }
  .error { background: #3a1d1d; border: 1px solid #6e2c2c; padding: 10px 12px; border-radius: 6px; margin-bottom: 16px; }
  .warning { background: #3a321d; border: 1px solid #6e5f2c; padding: 8px 12px; border-radius: 6px; margin-bottom: 8px; font-size: .9rem; }
  .cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(140px, 1fr)); gap: 12px; margin-bottom: 24px; }
  .card { background: var(--card); border-radius: 8px; padding: 14px; }
  .card .label { color: var(--muted); font-size: .75rem; text-transform: uppercase; letter-spacing: .05em; }
  .card .value { font-size: 1.5rem; font-weight: 600; margin-top: 4px; }
  .panel { background: var(--card); border-radius: 8px; padding: 16px; margin-bottom: 24px; }
  .panel h2 { margin: 0 0 12px; font-size: 1rem; color: var(--muted); }
  table { width: 100%; border-collapse: collapse; font-size: .9rem; }
  th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid #2c3440; }
  th { color: var(--muted); font-weight: 500; }
  td.num, th.num { text-align: right; font-variant-numeric: tabular-nums; }
  .heat td { text-align: center; padding: 4px 2px; font-size: .75rem; border: 0; border-radius: 3px; }
  .show-header { display: flex; gap: 16px; align-items: center; margin-bottom: 24px; }
  .show-header img { width: 72px; border-radius: 6px; }
  #dashboard { display: none; }
</style>
</head>
<body>
<div class="wrap">
  <h1><span>series</span>scope</h1>
  <form id="scrape-form">
    <input type="url" id="show-url" placeholder="https://www.imdb.com/title/tt0903747/" required>
    <button type="submit" id="scrape-button">Analyze</button>
  </form>
  <div id="error" class="error" style="display:none"></div>

  <div id="dashboard">
    <div class="show-header">
      <img id="poster" alt="" style="display:none">
      <div>
        <h2 id="show-name" style="margin:0;font-size:1.3rem"></h2>
        <div id="show-meta" style="color:var(--muted)"></div>
        <a id="export-link" style="color:var(--accent)" download>Download CSV</a>
      </div>
    </div>
    <div id="warnings"></div>
    <div class="cards" id="summary-cards"></div>
    <div class="panel"><h2>Average rating per season</h2><canvas id="season-chart"></canvas></div>
    <div class="panel"><h2>Rating trend across the series</h2><canvas id="trend-chart"></canvas></div>
    <div class="panel"><h2>Rating distribution</h2><canvas id="histogram-chart"></canvas></div>
    <div class="panel"><h2>Season / episode heatmap</h2><div id="heatmap"></div></div>
    <div class="panel"><h2>Best episodes</h2><table id="top-table"></table></div>
    <div class="panel"><h2>Worst episodes</h2><table id="bottom-table"></table></div>
    <div class="panel"><h2>All episodes</h2><table id="episodes-table"></table></div>
  </div>
</div>

<script>
const charts = {};

function chart(id, config) {
  if (charts[id]) charts[id].destroy();
  charts[id] = new Chart(document.getElementById(id), config);
}

function text(v) { return v === null || v === undefined ? "—" : v; }

function heatColor(rating) {
  if (rating === null) return "#242b35";
  const t = Math.max(0, Math.min(1, (rating - 4) / 6));
  const hue = 0 + t * 120;
  return "hsl(" + hue + ", 55%, " + (22 + t * 14) + "%)";
}

function episodeRows(table, episodes) {
  let html = "<tr><th>Episode</th><th>Title</th><th>Air date</th><th class=num>Rating</th><th class=num>Votes</th></tr>";
  for (const ep of episodes) {
    html += "<tr><td>S" + ep.season + ".E" + ep.episode + "</td><td>" +
      ep.title.replace(/&/g, "&amp;").replace(/</g, "&lt;") + "</td><td>" +
      text(ep.air_date) + "</td><td class=num>" + text(ep.rating) +
      "</td><td class=num>" + (ep.votes === null ? "—" : ep.votes.toLocaleString()) + "</td></tr>";
  }
  table.innerHTML = html;
}

function render(data) {
  document.getElementById("show-name").textContent = data.show.name;
  const meta = [];
  meta.push(data.show.seasons.length + " season" + (data.show.seasons.length === 1 ? "" : "s"));
  if (data.show.rating !== null) meta.push("series rating " + data.show.rating + "/10");
  if (data.show.votes !== null) meta.push(data.show.votes.toLocaleString() + " votes");
  document.getElementById("show-meta").textContent = meta.join(" · ");
  document.getElementById("export-link").href =
    "/api/show/export?url=" + encodeURIComponent(document.getElementById("show-url").value);

  const poster = document.getElementById("poster");
  poster.style.display = data.show.poster_url ? "" : "none";
  poster.src = data.show.poster_url || "";

  document.getElementById("warnings").innerHTML = (data.warnings || []).map(w =>
    "<div class=warning>Season " + w.season + " could not be scraped: " + w.message + "</div>").join("");

  const s = data.summary;
  document.getElementById("summary-cards").innerHTML = [
    ["Episodes", s.episodes], ["Rated", s.rated],
    ["Mean", s.mean.toFixed(2)], ["Median", s.median.toFixed(2)],
    ["Std dev", s.std_dev.toFixed(2)],
    ["Range", s.min.toFixed(1) + " – " + s.max.toFixed(1)],
    ["Total votes", s.votes.total.toLocaleString()],
  ].map(([label, value]) =>
    "<div class=card><div class=label>" + label + "</div><div class=value>" + value + "</div></div>").join("");

  chart("season-chart", {
    type: "bar",
    data: {
      labels: data.season_averages.map(a => "Season " + a.season),
      datasets: [{ data: data.season_averages.map(a => a.mean), backgroundColor: "#f5c518" }],
    },
    options: { plugins: { legend: { display: false } }, scales: { y: { suggestedMin: 5, suggestedMax: 10 } } },
  });

  chart("trend-chart", {
    type: "line",
    data: {
      labels: data.trend.points.map(p => p.label),
      datasets: [
        { label: "rating", data: data.trend.points.map(p => p.rating), borderColor: "#f5c518", tension: .25, pointRadius: 2 },
        { label: "mean", data: data.trend.points.map(() => data.trend.mean), borderColor: "#8a94a3", borderDash: [6, 4], pointRadius: 0 },
        { label: "max", data: data.trend.points.map(() => data.trend.max), borderColor: "#3f7f4f", borderDash: [2, 4], pointRadius: 0 },
        { label: "min", data: data.trend.points.map(() => data.trend.min), borderColor: "#7f3f3f", borderDash: [2, 4], pointRadius: 0 },
      ],
    },
  });

  chart("histogram-chart", {
    type: "bar",
    data: {
      labels: data.histogram.map(b => b.from.toFixed(1)),
      datasets: [{ data: data.histogram.map(b => b.count), backgroundColor: "#5a8dd6" }],
    },
    options: { plugins: { legend: { display: false } } },
  });

  let heat = "<table class=heat><tr><th></th>" +
    data.heatmap.episodes.map(e => "<th>E" + e + "</th>").join("") + "</tr>";
  for (const row of data.heatmap.rows) {
    heat += "<tr><th>S" + row.season + "</th>" + row.cells.map(c =>
      "<td style='background:" + heatColor(c) + "'>" + (c === null ? "" : c.toFixed(1)) + "</td>").join("") + "</tr>";
  }
  document.getElementById("heatmap").innerHTML = heat + "</table>";

  episodeRows(document.getElementById("top-table"), data.top);
  episodeRows(document.getElementById("bottom-table"), data.bottom);
  episodeRows(document.getElementById("episodes-table"), data.episodes);

  document.getElementById("dashboard").style.display = "block";
}

document.getElementById("scrape-form").addEventListener("submit", async e => {
  e.preventDefault();
  const button = document.getElementById("scrape-button");
  const errorBox = document.getElementById("error");
  button.disabled = true;
  errorBox.style.display = "none";
  try {
    const res = await fetch("/api/show?url=" + encodeURIComponent(document.getElementById("show-url").value));
    const body = await res.json();
    if (!res.ok) throw new Error(body.error || res.statusText);
    render(body);
  } catch (err) {
    document.getElementById("dashboard").style.display = "none";
    errorBox.textContent = err.message;
    errorBox.style.display = "block";
  } finally {
    button.disabled = false;
  }
});
</script>
</body>
</html>
`
