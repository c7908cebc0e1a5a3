package dashboard

// pageTemplate — единственная страница дашборда. Разметка строится из Layout,
// а обновления диаграмм запрашиваются у /_dash-update-component и /charts/.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Layout.Title}}</title>
<style>
body { background-color: #F0F0F0; font-family: sans-serif; margin: 0; padding: 0 16px 24px; }
h1 { text-align: center; color: #503D36; font-size: 40px; background-color: #fff; margin: 0 -16px 12px; padding: 12px 0; }
.panel { background-color: #fff; padding: 8px; margin-bottom: 12px; }
.panel img { display: block; margin: 0 auto; max-width: 100%; }
.caption { text-align: center; color: #555; font-size: 13px; min-height: 1em; }
.slider-label { text-align: center; font-size: 20px; background-color: #fff; margin: 0; padding: 6px 0; }
.slider { display: flex; gap: 12px; align-items: center; justify-content: center; }
.slider input[type=range] { width: 40%; }
select, input[type=search] { font-size: 15px; padding: 4px; }
</style>
</head>
<body>
<h1>{{.Layout.Title}}</h1>

<div class="panel">
  {{if .Layout.Dropdown.Searchable}}<input type="search" id="{{.Layout.Dropdown.ID}}-search" placeholder="{{.Layout.Dropdown.Placeholder}}">{{end}}
  <select id="{{.Layout.Dropdown.ID}}">
  {{- range .Layout.Dropdown.Options}}
    <option value="{{.Value}}"{{if eq .Value $.Layout.Dropdown.Value}} selected{{end}}>{{.Label}}</option>
  {{- end}}
  </select>
</div>

<div class="panel">
  <img id="{{.Layout.PieGraph.ID}}" alt="{{.Layout.PieGraph.ID}}">
  <div class="caption" id="{{.Layout.PieGraph.ID}}-caption"></div>
</div>

<p class="slider-label">{{.Layout.Slider.Label}}</p>
<div class="panel slider" id="{{.Layout.Slider.ID}}">
  <input type="range" id="{{.Layout.Slider.ID}}-low" min="{{.Layout.Slider.Min}}" max="{{.Layout.Slider.Max}}" step="{{.Layout.Slider.Step}}" list="{{.Layout.Slider.ID}}-marks">
  <input type="range" id="{{.Layout.Slider.ID}}-high" min="{{.Layout.Slider.Min}}" max="{{.Layout.Slider.Max}}" step="{{.Layout.Slider.Step}}" list="{{.Layout.Slider.ID}}-marks">
  <span id="{{.Layout.Slider.ID}}-value"></span>
  <datalist id="{{.Layout.Slider.ID}}-marks">
  {{- range .Layout.Slider.Marks}}
    <option value="{{.Value}}" label="{{.Label}}"></option>
  {{- end}}
  </datalist>
</div>

<div class="panel">
  <img id="{{.Layout.ScatterGraph.ID}}" alt="{{.Layout.ScatterGraph.ID}}">
  <div class="caption" id="{{.Layout.ScatterGraph.ID}}-caption"></div>
</div>

<script>
const layout = {{.Layout}};
const state = {};
state[layout.dropdown.id] = layout.dropdown.value;
state[layout.slider.id] = layout.slider.value.slice();

const dropdown = document.getElementById(layout.dropdown.id);
const low = document.getElementById(layout.slider.id + "-low");
const high = document.getElementById(layout.slider.id + "-high");
const rangeLabel = document.getElementById(layout.slider.id + "-value");
low.value = layout.slider.value[0];
high.value = layout.slider.value[1];

function chartURL(output) {
  const [lo, hi] = state[layout.slider.id];
  const q = new URLSearchParams({site: state[layout.dropdown.id], low: lo, high: hi});
  return "/charts/" + output + ".svg?" + q.toString();
}

function caption(figure) {
  if (figure.slices) {
    if (figure.slices.length === 0) return "no data";
    return figure.slices.map(s => s.label + ": " + s.value).join(" · ");
  }
  const n = (figure.points || []).length;
  return n + " launches with " + figure.low + " < payload < " + figure.high + " kg";
}

async function update(output) {
  const inputs = {};
  inputs[layout.dropdown.id] = state[layout.dropdown.id];
  inputs[layout.slider.id] = state[layout.slider.id];
  const resp = await fetch("/_dash-update-component", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify({output: output, inputs: inputs}),
  });
  const body = await resp.json();
  const cap = document.getElementById(output + "-caption");
  if (!resp.ok) {
    cap.textContent = body.error || resp.statusText;
    return;
  }
  cap.textContent = caption(body.response[output]);
  document.getElementById(output).src = chartURL(output);
}

function updateAll() {
  const [lo, hi] = state[layout.slider.id];
  rangeLabel.textContent = lo + " – " + hi + " kg";
  update(layout.pie_graph.id);
  update(layout.scatter_graph.id);
}

dropdown.addEventListener("change", () => {
  state[layout.dropdown.id] = dropdown.value;
  update(layout.pie_graph.id);
  update(layout.scatter_graph.id);
});

// Ползунок округляет значение до шага, поэтому из элемента читается только
// сдвинутая граница, а другая остаётся точной из state.
function onSlide(i, input) {
  const range = state[layout.slider.id].slice();
  range[i] = Number(input.value);
  if (range[0] > range[1]) { range.reverse(); }
  state[layout.slider.id] = range;
  rangeLabel.textContent = range[0] + " – " + range[1] + " kg";
  update(layout.scatter_graph.id);
}
low.addEventListener("change", () => onSlide(0, low));
high.addEventListener("change", () => onSlide(1, high));

const search = document.getElementById(layout.dropdown.id + "-search");
if (search) {
  search.addEventListener("input", () => {
    const needle = search.value.toLowerCase();
    for (const opt of dropdown.options) {
      opt.hidden = needle !== "" && !opt.textContent.toLowerCase().includes(needle);
    }
  });
}

updateAll();
</script>
</body>
</html>
`
