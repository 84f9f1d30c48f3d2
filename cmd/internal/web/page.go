package web

import (
	"html/template"
	"strings"
)

// Page is the lookup form page, rendered once at startup for the selected
// theme. The page is static; all data flows through the JSON API.
type Page struct {
	html string
}

func NewPage(theme Theme) (*Page, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	if err = tmpl.Execute(&b, theme); err != nil {
		return nil, err
	}
	return &Page{html: b.String()}, nil
}

func (p *Page) HTML() string {
	return p.html
}

const pageTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Consulta CNPJ</title>
<style>
  body { background: {{.Background}}; color: {{.Text}}; font-family: system-ui, sans-serif; margin: 0; }
  main { max-width: 920px; margin: 0 auto; padding: 24px 16px; }
  h1 { color: {{.Accent}}; }
  .card { background: {{.Surface}}; border: 1px solid {{.Border}}; border-radius: 14px; padding: 18px; margin-bottom: 18px; }
  .muted { color: {{.Muted}}; font-size: .95rem; }
  input[type=text] { background: {{.Background}}; color: {{.Text}}; border: 1px solid {{.Border}}; border-radius: 8px; padding: 10px 12px; width: 260px; font-size: 1.05rem; }
  button { background: {{.Accent}}; color: {{.AccentText}}; border: 0; border-radius: 10px; padding: 11px 16px; font-weight: 700; cursor: pointer; margin-left: 8px; }
  button:hover { background: {{.AccentHover}}; }
  button:disabled { opacity: .5; cursor: wait; }
  .tabs { display: flex; flex-wrap: wrap; gap: 6px; margin: 12px 0; }
  .tabs button { margin: 0; background: {{.Surface}}; color: {{.Text}}; border: 1px solid {{.Border}}; }
  .tabs button.active { background: {{.Accent}}; color: {{.AccentText}}; }
  table { width: 100%; border-collapse: collapse; }
  td { padding: 6px 8px; border-bottom: 1px solid {{.Border}}33; vertical-align: top; white-space: pre-line; }
  td:first-child { color: {{.Muted}}; width: 38%; }
  .warning { color: {{.Accent}}; }
  .error { color: #FF6B6B; }
  .footer { margin-top: 18px; color: {{.Muted}}; font-size: 12px; }
</style>
</head>
<body>
<main>
  <h1>Consulta CNPJ</h1>

  <div class="card">
    <form id="lookup-form">
      <input type="text" id="cnpj" placeholder="00.000.000/0000-00" autocomplete="off" autofocus>
      <button type="submit" id="consultar">Consultar</button>
      <button type="button" id="export-xlsx" disabled>Exportar Excel</button>
      <button type="button" id="export-card" disabled>Cartão CNPJ (txt)</button>
    </form>
    <p id="message" class="muted"></p>
  </div>

  <div class="card" id="result" hidden>
    <div class="tabs" id="tabs"></div>
    <table id="fields"></table>
  </div>

  <div class="card">
    <h3>Consultas recentes</h3>
    <table id="history"></table>
  </div>

  <p class="footer">Dados públicos da Receita Federal via CNPJá. Tema: {{.Name}}.</p>
</main>
<script>
const form = document.getElementById("lookup-form");
const input = document.getElementById("cnpj");
const message = document.getElementById("message");
const tabsEl = document.getElementById("tabs");
const fieldsEl = document.getElementById("fields");
const resultEl = document.getElementById("result");
const btnLookup = document.getElementById("consultar");
const btnXlsx = document.getElementById("export-xlsx");
const btnCard = document.getElementById("export-card");
let tabs = [];

input.addEventListener("input", () => {
  const d = input.value.replace(/\D/g, "").slice(0, 14);
  let out = "";
  for (let i = 0; i < d.length; i++) {
    if (i === 2 || i === 5) out += ".";
    if (i === 8) out += "/";
    if (i === 12) out += "-";
    out += d[i];
  }
  input.value = out;
});

form.addEventListener("submit", async (ev) => {
  ev.preventDefault();
  btnLookup.disabled = true;
  message.textContent = "Consultando...";
  message.className = "muted";
  try {
    const resp = await fetch("/api/lookups", {
      method: "POST",
      headers: {"Content-Type": "application/json"},
      body: JSON.stringify({cnpj: input.value}),
    });
    const body = await resp.json();
    if (!resp.ok) {
      showError(body);
      return;
    }
    tabs = body.tabs;
    renderTabs(0);
    resultEl.hidden = false;
    btnXlsx.disabled = btnCard.disabled = false;
    const notes = (body.warnings || []).slice();
    if (body.checksum_warning) notes.push(body.checksum_warning);
    message.textContent = notes.join(" — ");
    message.className = "warning";
    loadHistory();
  } catch (err) {
    message.textContent = "Falha de conexão com o servidor";
    message.className = "error";
    resultEl.hidden = true;
    btnXlsx.disabled = btnCard.disabled = true;
  } finally {
    btnLookup.disabled = false;
  }
});

function showError(body) {
  resultEl.hidden = true;
  btnXlsx.disabled = btnCard.disabled = true;
  let text = body.message;
  if (!text && body.errors) text = Object.values(body.errors).flat().join("; ");
  message.textContent = text || "Erro inesperado";
  message.className = "error";
}

function renderTabs(active) {
  tabsEl.innerHTML = "";
  tabs.forEach((tab, i) => {
    const b = document.createElement("button");
    b.textContent = tab.title;
    b.className = i === active ? "active" : "";
    b.onclick = () => renderTabs(i);
    tabsEl.appendChild(b);
  });
  fieldsEl.innerHTML = "";
  for (const f of tabs[active].fields) {
    const tr = fieldsEl.insertRow();
    tr.insertCell().textContent = f.label;
    tr.insertCell().textContent = f.value;
  }
}

btnXlsx.onclick = () => { window.location = "/api/exports/spreadsheet"; };
btnCard.onclick = () => { window.location = "/api/exports/card"; };

async function loadHistory() {
  const resp = await fetch("/api/history?limit=10");
  if (!resp.ok) return;
  const body = await resp.json();
  const table = document.getElementById("history");
  table.innerHTML = "";
  for (const e of body.lookups) {
    const tr = table.insertRow();
    tr.insertCell().textContent = e.cnpj_display;
    tr.insertCell().textContent = e.legal_name || "";
    tr.insertCell().textContent = e.outcome === "FOUND" ? (e.status || "") : "Não encontrado";
  }
}

loadHistory();
</script>
</body>
</html>
`
