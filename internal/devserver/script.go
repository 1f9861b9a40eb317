package devserver

// ReloadScript returns the <script> element injected into pages in
// development mode. It reloads the page when the server says so and shows
// the last content error as an overlay on top of the previous content.
func ReloadScript() string {
	return reloadScript
}

const reloadScript = `<script>
(function () {
  var overlayId = "sailsite-dev-error";
  function showError() {
    fetch("` + ErrorPath + `", {cache: "no-store"}).then(function (res) {
      var old = document.getElementById(overlayId);
      if (old) { old.remove(); }
      if (res.status !== 500) { return; }
      return res.json().then(function (body) {
        var el = document.createElement("div");
        el.id = overlayId;
        el.setAttribute("role", "alert");
        el.style.cssText = "position:fixed;inset:0;z-index:9999;background:rgba(15,15,35,.92);color:#eee;padding:2rem;font-family:monospace;white-space:pre-wrap;overflow:auto";
        var title = document.createElement("h1");
        title.textContent = "Content error";
        title.style.color = "#e74c3c";
        var pre = document.createElement("pre");
        pre.textContent = body.error;
        el.appendChild(title);
        el.appendChild(pre);
        document.body.appendChild(el);
      });
    }).catch(function () {});
  }
  function connect(reconnecting) {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + location.host + "` + ReloadPath + `");
    ws.onmessage = function (ev) {
      if (ev.data === "reload") { location.reload(); }
      if (ev.data === "connected" && reconnecting) { location.reload(); }
    };
    ws.onclose = function () { setTimeout(function () { connect(true); }, 1000); };
  }
  showError();
  connect(false);
})();
</script>`
