package oauth

const callbackHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Habit Coach</title>
<style>
*{margin:0;padding:0;box-sizing:border-box}
body{
  background:#0f172a;color:#e2e8f0;
  font-family:'JetBrains Mono','SF Mono','Consolas',monospace;
  height:100vh;display:flex;align-items:center;justify-content:center;
}
.card{text-align:center}
.logo{font-size:28px;font-weight:700;letter-spacing:8px;color:#a78bfa;margin-bottom:24px}
.msg{font-size:14px;color:#94a3b8;line-height:1.8}
.ok{color:#34d399}
</style>
</head>
<body>
<div class="card">
  <div class="logo">HABIT COACH</div>
  <div class="msg"><span class="ok">GitHub linked.</span><br>You can close this tab and return to your terminal.</div>
</div>
</body>
</html>`
