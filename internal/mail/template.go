package mail

import (
	"bytes"
	"html/template"
	"time"
)

var bodyTemplate = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Email Notification</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 0; background-color: #f8f9fa; color: #333; }
        .container { max-width: 600px; margin: 20px auto; background: #ffffff; border-radius: 8px; box-shadow: 0 4px 10px rgba(0, 0, 0, 0.1); overflow: hidden; }
        .header { background-color: #007bff; color: white; text-align: center; padding: 20px; font-size: 24px; font-weight: bold; }
        .content { padding: 20px; text-align: left; line-height: 1.6; }
        .content p { margin: 10px 0; }
        .footer { text-align: center; padding: 15px; font-size: 12px; color: #666; background-color: #f1f1f1; border-top: 1px solid #ddd; }
        .footer a { color: #007bff; text-decoration: none; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">{{.Header}}</div>
        <div class="content">
            <p>{{.Intro}}</p>
            <p><h2>{{.Code}}</h2></p>
            <p>{{.Notice}}</p>
        </div>
        <div class="footer">
            <p>{{.Footer}}</p>
            <p>&copy; {{.Year}} <a href="#">Pool Seek</a>. All rights reserved.</p>
        </div>
    </div>
</body>
</html>
`))

type templateData struct {
	Message
	Year int
}

// RenderHTML produces the HTML body for a message.
func RenderHTML(msg Message) (string, error) {
	var buf bytes.Buffer
	err := bodyTemplate.Execute(&buf, templateData{Message: msg, Year: time.Now().Year()})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
