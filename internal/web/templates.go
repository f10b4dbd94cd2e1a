package web

import "html/template"

var pageTemplates = template.Must(template.New("pages").Parse(`
{{define "head"}}
<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>yamusic-downloader</title>
<style>
  body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
  h1 { font-size: 1.4rem; }
  a { color: #1a5bb8; }
  form input[type=text], form input[type=password] { width: 28rem; max-width: 90%; padding: 0.4rem; }
  form button { padding: 0.4rem 1rem; }
  table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
  th, td { text-align: left; padding: 0.3rem 0.6rem; border-bottom: 1px solid #ddd; }
  .succeeded { color: #1a7f37; }
  .skipped { color: #9a6700; }
  .failed, .error { color: #cf222e; }
  #log { background: #f6f8fa; padding: 0.6rem; font-family: monospace; font-size: 0.85rem;
         max-height: 20rem; overflow-y: auto; white-space: pre-wrap; }
  nav { margin-bottom: 1.5rem; }
</style>
</head>
<body>
<nav><a href="/">Download</a> &middot; <a href="/history">History</a></nav>
{{end}}

{{define "foot"}}
</body>
</html>
{{end}}

{{define "index"}}
{{template "head"}}
<h1>Download a playlist</h1>
<form method="post" action="/download">
  <p><input type="text" name="reference" placeholder="playlist URL, owner:kind, or 'liked'" required></p>
  <p><input type="password" name="token" placeholder="OAuth token (blank = server token)"></p>
  <p>
    <label>Format:
      <select name="format">
        <option value="">server default</option>
        <option value="mp3">mp3</option>
        <option value="flac">flac</option>
        <option value="aac">aac</option>
      </select>
    </label>
    <label><input type="checkbox" name="playlist" value="on"> create playlist file</label>
  </p>
  <button type="submit">Download</button>
</form>
{{if .Runs}}
<h1>Recent runs</h1>
<table>
  <tr><th>Started</th><th>Playlist</th><th>Reference</th><th>Result</th></tr>
  {{range .Runs}}
  <tr>
    <td>{{.Started.Format "2006-01-02 15:04"}}</td>
    <td><a href="/history/{{.ID}}">{{if .PlaylistTitle}}{{.PlaylistTitle}}{{else}}&mdash;{{end}}</a></td>
    <td>{{.Reference}}</td>
    <td>
      {{if .Error}}<span class="error">failed</span>
      {{else}}<span class="succeeded">{{.Succeeded}}</span> /
              <span class="skipped">{{.Skipped}}</span> /
              <span class="failed">{{.Failed}}</span>{{end}}
    </td>
  </tr>
  {{end}}
</table>
{{end}}
{{template "foot"}}
{{end}}

{{define "progress"}}
{{template "head"}}
<h1>Downloading: {{.Reference}}</h1>
<p id="status">starting&hellip;</p>
<p><span id="processed">0</span> / <span id="total">0</span> tracks
   (<span id="succeeded" class="succeeded">0</span> downloaded,
    <span id="skipped" class="skipped">0</span> skipped,
    <span id="failed" class="failed">0</span> failed)</p>
<div id="log"></div>
<script>
async function poll() {
  const resp = await fetch("/api/progress/{{.ID}}");
  if (!resp.ok) {
    document.getElementById("status").textContent = "run not found";
    return;
  }
  const data = await resp.json();
  document.getElementById("processed").textContent = data.processed;
  document.getElementById("total").textContent = data.total;
  document.getElementById("succeeded").textContent = data.succeeded;
  document.getElementById("skipped").textContent = data.skipped;
  document.getElementById("failed").textContent = data.failed;
  document.getElementById("log").textContent = (data.messages || []).join("\n");
  if (data.status === "running") {
    document.getElementById("status").textContent =
      "running (" + (data.received_bytes / 1048576).toFixed(1) + " MiB received)";
    setTimeout(poll, 1000);
  } else if (data.status === "error") {
    document.getElementById("status").textContent = "failed: " + (data.error || "unknown error");
  } else {
    document.getElementById("status").textContent = "complete";
  }
}
poll();
</script>
{{template "foot"}}
{{end}}

{{define "history"}}
{{template "head"}}
<h1>Run history</h1>
{{if .Runs}}
<table>
  <tr><th>Started</th><th>Playlist</th><th>Reference</th><th>Downloaded</th><th>Skipped</th><th>Failed</th><th>Error</th></tr>
  {{range .Runs}}
  <tr>
    <td><a href="/history/{{.ID}}">{{.Started.Format "2006-01-02 15:04"}}</a></td>
    <td>{{.PlaylistTitle}}</td>
    <td>{{.Reference}}</td>
    <td class="succeeded">{{.Succeeded}}</td>
    <td class="skipped">{{.Skipped}}</td>
    <td class="failed">{{.Failed}}</td>
    <td class="error">{{.Error}}</td>
  </tr>
  {{end}}
</table>
{{else}}
<p>No runs recorded yet.</p>
{{end}}
{{template "foot"}}
{{end}}

{{define "rundetail"}}
{{template "head"}}
<h1>{{if .Run.PlaylistTitle}}{{.Run.PlaylistTitle}}{{else}}{{.Run.Reference}}{{end}}</h1>
<p>{{.Run.Started.Format "2006-01-02 15:04:05"}} &middot;
   <span class="succeeded">{{.Run.Succeeded}} downloaded</span>,
   <span class="skipped">{{.Run.Skipped}} skipped</span>,
   <span class="failed">{{.Run.Failed}} failed</span></p>
{{if .Run.Error}}<p class="error">{{.Run.Error}}</p>{{end}}
{{if .Tracks}}
<table>
  <tr><th>#</th><th>Artist</th><th>Title</th><th>Outcome</th><th>Detail</th></tr>
  {{range .Tracks}}
  <tr>
    <td>{{.Position}}</td>
    <td>{{.Artist}}</td>
    <td>{{.Title}}</td>
    <td class="{{.Outcome}}">{{.Outcome}}</td>
    <td>{{if .Detail}}{{.Detail}}{{else}}{{.Path}}{{end}}</td>
  </tr>
  {{end}}
</table>
{{end}}
{{template "foot"}}
{{end}}
`))
