package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/yosssi/gohtml"
)

// EChartsURL is the script the page loads to draw figures.
const EChartsURL = "https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"

// PageData fills the page template.
type PageData struct {
	Title     string
	EChartsJS string
}

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

// Page writes the HTML document hosting the dashboard. With pretty set the
// output is re-indented by gohtml.
func Page(w io.Writer, title string, pretty bool) error {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, PageData{Title: title, EChartsJS: EChartsURL}); err != nil {
		return fmt.Errorf("view: render page: %w", err)
	}
	out := buf.Bytes()
	if pretty {
		out = gohtml.FormatBytes(out)
	}
	_, err := w.Write(out)
	return err
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<script src="{{.EChartsJS}}"></script>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; margin: 0 auto; max-width: 1100px; padding: 20px; }
select { width: 100%; padding: 8px; font-size: 15px; }
.graph { width: 100%; height: 450px; }
.slider { display: flex; gap: 12px; align-items: center; }
.slider input { flex: 1; }
.marks { position: relative; height: 20px; font-size: 12px; color: #555; margin: 4px 0 16px; }
.marks span { position: absolute; transform: translateX(-50%); white-space: nowrap; }
</style>
</head>
<body>
<div id="app"></div>
<script>
(function () {
  var params = new URLSearchParams(window.location.search);
  var apiKey = params.get("api_key") || "";
  var state = {};
  var wiring = [];
  var charts = {};
  var sliders = {};
  var pending = {};
  var seq = 0;
  var sock = null;

  function headers() {
    var h = {"Content-Type": "application/json"};
    if (apiKey) { h["x-api-key"] = apiKey; }
    return h;
  }

  function getJSON(path) {
    return fetch(path, {headers: headers()}).then(function (r) {
      if (!r.ok) { throw new Error(path + ": " + r.status); }
      return r.json();
    });
  }

  function build(node, parent) {
    var el;
    switch (node.type) {
    case "dropdown":
      el = document.createElement("select");
      el.id = node.id;
      node.props.options.forEach(function (o) {
        var opt = document.createElement("option");
        opt.value = o.value;
        opt.textContent = o.label;
        el.appendChild(opt);
      });
      el.value = node.props.value;
      state[node.id + ".value"] = node.props.value;
      el.addEventListener("change", function () { changed(node.id + ".value", el.value); });
      break;
    case "rangeslider":
      el = document.createElement("div");
      el.id = node.id;
      var row = document.createElement("div");
      row.className = "slider";
      var lo = rangeInput(node.props, node.props.value[0]);
      var hi = rangeInput(node.props, node.props.value[1]);
      row.appendChild(lo);
      row.appendChild(hi);
      var marks = document.createElement("div");
      marks.className = "marks";
      el.appendChild(row);
      el.appendChild(marks);
      sliders[node.id] = {props: node.props, marks: marks};
      state[node.id + ".value"] = node.props.value;
      var onSlide = function () {
        var a = Number(lo.value), b = Number(hi.value);
        changed(node.id + ".value", a <= b ? [a, b] : [b, a]);
      };
      lo.addEventListener("change", onSlide);
      hi.addEventListener("change", onSlide);
      break;
    case "graph":
      el = document.createElement("div");
      el.id = node.id;
      el.className = "graph";
      break;
    default:
      el = document.createElement(node.type);
      if (node.text) { el.textContent = node.text; }
      if (node.props && node.props.style) {
        Object.keys(node.props.style).forEach(function (k) {
          var v = node.props.style[k];
          el.style.setProperty(k.replace(/[A-Z]/g, function (c) { return "-" + c.toLowerCase(); }), typeof v === "number" ? v + "px" : v);
        });
      }
    }
    (node.children || []).forEach(function (c) { build(c, el); });
    parent.appendChild(el);
    if (node.type === "graph") { charts[node.id] = echarts.init(el); }
  }

  function rangeInput(props, value) {
    var i = document.createElement("input");
    i.type = "range";
    i.min = props.min;
    i.max = props.max;
    i.step = props.step;
    i.value = value;
    return i;
  }

  function request(w) {
    return {
      output: w.output,
      inputs: w.inputs.map(function (dep) {
        var dot = dep.lastIndexOf(".");
        return {id: dep.slice(0, dot), property: dep.slice(dot + 1), value: state[dep]};
      })
    };
  }

  function send(w) {
    var req = request(w);
    if (sock && sock.readyState === WebSocket.OPEN) {
      req.id = String(++seq);
      pending[req.id] = true;
      sock.send(JSON.stringify(req));
      return;
    }
    fetch("/api/v1/update", {method: "POST", headers: headers(), body: JSON.stringify(req)})
      .then(function (r) { return r.json(); })
      .then(function (resp) {
        if (resp.error) { console.error(resp.error); return; }
        apply(resp);
      });
  }

  function apply(resp) {
    var dot = resp.output.lastIndexOf(".");
    var id = resp.output.slice(0, dot), prop = resp.output.slice(dot + 1);
    if (prop === "figure" && charts[id]) {
      charts[id].setOption(resp.value.option, true);
    } else if (prop === "marks" && sliders[id]) {
      drawMarks(sliders[id], resp.value);
    }
  }

  function drawMarks(s, marks) {
    s.marks.innerHTML = "";
    var span = s.props.max - s.props.min;
    Object.keys(marks).forEach(function (k) {
      var m = document.createElement("span");
      m.textContent = marks[k];
      m.style.left = ((Number(k) - s.props.min) / span * 100) + "%";
      s.marks.appendChild(m);
    });
  }

  function changed(dep, value) {
    state[dep] = value;
    wiring.forEach(function (w) {
      if (w.inputs.indexOf(dep) >= 0) { send(w); }
    });
  }

  function connect() {
    var proto = window.location.protocol === "https:" ? "wss://" : "ws://";
    var url = proto + window.location.host + "/ws/callbacks";
    if (apiKey) { url += "?api_key=" + encodeURIComponent(apiKey); }
    return new Promise(function (resolve) {
      try {
        sock = new WebSocket(url);
      } catch (e) {
        resolve();
        return;
      }
      sock.onopen = function () { resolve(); };
      sock.onerror = function () { sock = null; resolve(); };
      sock.onclose = function () { sock = null; };
      sock.onmessage = function (ev) {
        var msg = JSON.parse(ev.data);
        delete pending[msg.id];
        if (msg.event === "callback") { apply(msg.data); }
        else if (msg.event === "error") { console.error(msg.error); }
      };
    });
  }

  Promise.all([getJSON("/api/v1/layout"), getJSON("/api/v1/callbacks"), connect()])
    .then(function (res) {
      build(res[0], document.getElementById("app"));
      wiring = res[1];
      wiring.forEach(send);
      window.addEventListener("resize", function () {
        Object.keys(charts).forEach(function (k) { charts[k].resize(); });
      });
    })
    .catch(function (err) { document.getElementById("app").textContent = String(err); });
})();
</script>
</body>
</html>
`
