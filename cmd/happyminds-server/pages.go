package main

const indexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width,initial-scale=1" />
  <title>Happy Minds</title>
  <style>
    :root {
      --bg: radial-gradient(900px 600px at 20% -10%, #2b3a67 0%, #131a33 50%, #090d1c 100%);
      --panel: rgba(20, 28, 54, 0.78);
      --line: rgba(148, 163, 184, 0.25);
      --text: #e2e8f0;
      --muted: #94a3b8;
      --accent: #7dd3fc;
    }
    * { box-sizing: border-box; }
    body { margin: 0; min-height: 100vh; background: var(--bg); color: var(--text); font-family: system-ui, sans-serif; }
    main { max-width: 680px; margin: 0 auto; padding: 48px 20px; }
    h1 { font-weight: 600; }
    p { color: var(--muted); line-height: 1.6; }
    nav a { display: inline-block; margin-right: 16px; padding: 10px 18px; border: 1px solid var(--line); border-radius: 10px; background: var(--panel); color: var(--accent); text-decoration: none; }
  </style>
</head>
<body>
<main>
  <h1>Happy Minds</h1>
  <p>Write a few lines about your day. We read the mood behind the words and leave you with something kind.</p>
  <nav>
    <a href="/entry">New entry</a>
    <a href="/mood-tracker">Mood tracker</a>
  </nav>
</main>
</body>
</html>`

const entryHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width,initial-scale=1" />
  <title>New Entry - Happy Minds</title>
  <style>
    body { margin: 0; min-height: 100vh; background: #131a33; color: #e2e8f0; font-family: system-ui, sans-serif; }
    main { max-width: 680px; margin: 0 auto; padding: 48px 20px; }
    textarea { width: 100%; min-height: 180px; padding: 12px; border-radius: 10px; border: 1px solid rgba(148,163,184,0.25); background: rgba(20,28,54,0.78); color: inherit; font: inherit; }
    button { margin-top: 12px; padding: 10px 20px; border-radius: 10px; border: 0; background: #7dd3fc; color: #0b1224; font-weight: 600; cursor: pointer; }
    #result { margin-top: 24px; padding: 16px; border-radius: 10px; background: rgba(20,28,54,0.78); display: none; }
    .mood { text-transform: capitalize; color: #7dd3fc; }
    .muted { color: #94a3b8; }
    a { color: #7dd3fc; }
  </style>
</head>
<body>
<main>
  <h1>How was your day?</h1>
  <textarea id="journal-entry" maxlength="4000" placeholder="Write it out..."></textarea>
  <div><button id="submit">Analyze &amp; save</button></div>
  <div id="result"></div>
  <p class="muted"><a href="/">Home</a> · <a href="/mood-tracker">Mood tracker</a></p>
</main>
<script>
document.getElementById('submit').addEventListener('click', async () => {
  const text = document.getElementById('journal-entry').value;
  const box = document.getElementById('result');
  box.style.display = 'block';
  box.textContent = 'Analyzing...';
  try {
    const resp = await fetch('/analyze/save', {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify({ text })
    });
    const data = await resp.json();
    if (!resp.ok) {
      box.textContent = data.error || 'Something went wrong.';
      return;
    }
    const r = data.result;
    box.innerHTML = '<p>Detected mood: <strong class="mood">' + r.emotion +
      '</strong> <span class="muted">(' + (r.confidence * 100).toFixed(1) + '%)</span></p>' +
      '<p>' + r.affirmation + '</p>';
  } catch (err) {
    box.textContent = 'Could not reach the server.';
  }
});
</script>
</body>
</html>`

const moodTrackerHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width,initial-scale=1" />
  <title>Mood Tracker - Happy Minds</title>
  <style>
    body { margin: 0; min-height: 100vh; background: #131a33; color: #e2e8f0; font-family: system-ui, sans-serif; }
    main { max-width: 680px; margin: 0 auto; padding: 48px 20px; }
    #current { padding: 16px; border-radius: 10px; background: rgba(20,28,54,0.78); }
    .mood { text-transform: capitalize; color: #7dd3fc; }
    .muted { color: #94a3b8; font-size: 0.9em; }
    ul { list-style: none; padding: 0; }
    li { padding: 12px; margin-bottom: 10px; border-radius: 10px; background: rgba(20,28,54,0.78); }
    a { color: #7dd3fc; }
  </style>
</head>
<body>
<main>
  <h1>Mood tracker</h1>
  <div id="current">Loading...</div>
  <h2>Journal log</h2>
  <ul id="log"></ul>
  <p class="muted"><a href="/">Home</a> · <a href="/entry">New entry</a></p>
</main>
<script>
function esc(s) {
  const div = document.createElement('div');
  div.textContent = s || '';
  return div.innerHTML;
}
async function load() {
  const current = document.getElementById('current');
  try {
    const snap = await (await fetch('/api/mood/current')).json();
    current.innerHTML = '<p>Current mood: <strong class="mood">' + esc(snap.mood) + '</strong></p>' +
      '<p>' + esc(snap.affirmation) + '</p>' +
      (snap.timestamp ? '<p class="muted">' + esc(snap.timestamp) + '</p>' : '');
    const entries = await (await fetch('/api/entries')).json();
    const log = document.getElementById('log');
    log.innerHTML = entries.map(e =>
      '<li><span class="mood">' + esc(e.mood) + '</span> <span class="muted">' + esc(e.timestamp) + '</span>' +
      '<p>' + esc(e.entry) + '</p><p class="muted">' + esc(e.affirmation) + '</p></li>'
    ).join('');
  } catch (err) {
    current.textContent = 'Could not reach the server.';
  }
}
load();
</script>
</body>
</html>`
