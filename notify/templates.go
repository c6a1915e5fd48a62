package notify

import (
	"bytes"
	"html/template"
)

var credentialsTpl = template.Must(template.New("credentials").Parse(`<!doctype html>
<html>
  <body style="font-family:Arial,sans-serif;color:#222">
    <h2>Welcome to {{.Business}}, {{.Name}}</h2>
    <p>An account has been created for you as <strong>{{.Role}}</strong>.</p>
    <p>Email: <strong>{{.Email}}</strong><br>
       Temporary password: <strong>{{.Password}}</strong></p>
    <p>Please sign in and change your password.</p>
  </body>
</html>`))

// Credentials is the payload of the account-created e-mail.
type Credentials struct {
	Business string
	Name     string
	Role     string
	Email    string
	Password string
}

func RenderCredentials(c Credentials) (string, error) {
	var buf bytes.Buffer
	if err := credentialsTpl.Execute(&buf, c); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var lowStockTpl = template.Must(template.New("low-stock").Parse(`<!doctype html>
<html>
  <body style="font-family:Arial,sans-serif;color:#222">
    <h2>{{.Business}}: low stock</h2>
    <table cellpadding="4" style="border-collapse:collapse">
      <tr><th align="left">Item</th><th>SKU</th><th>Stock</th><th>Minimum</th></tr>
      {{range .Items}}<tr><td>{{.Name}}</td><td>{{.SKU}}</td><td align="right">{{.Stock}}</td><td align="right">{{.Min}}</td></tr>
      {{end}}
    </table>
  </body>
</html>`))

type LowStockLine struct {
	Name  string
	SKU   string
	Stock int
	Min   int
}

type LowStockReport struct {
	Business string
	Items    []LowStockLine
}

func RenderLowStock(r LowStockReport) (string, error) {
	var buf bytes.Buffer
	if err := lowStockTpl.Execute(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}
