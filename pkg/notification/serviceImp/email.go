package serviceImp

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"dispatch/entities"
)

var emailTmpl = template.Must(template.New("task").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2 style="color: #333;">予定が{{.Action}}されました</h2>
<div style="background-color: #f9f9f9; padding: 20px; border-radius: 8px; margin: 20px 0;">
<h3 style="margin-top: 0; color: #555;">予定詳細</h3>
<table style="width: 100%; border-collapse: collapse;">
<tr><td style="font-weight: bold; width: 120px;">得意先名:</td><td>{{.Task.CustomerName}}</td></tr>
<tr><td style="font-weight: bold;">現場名:</td><td>{{.Task.SiteName}}</td></tr>
<tr><td style="font-weight: bold;">現場住所:</td><td>{{.Task.SiteAddress}}</td></tr>
<tr><td style="font-weight: bold;">開始時刻:</td><td>{{.Start}}</td></tr>
{{- if .End}}
<tr><td style="font-weight: bold;">終了時刻:</td><td>{{.End}}</td></tr>
{{- end}}
<tr><td style="font-weight: bold;">運送区分:</td><td>{{.Method}}</td></tr>
<tr><td style="font-weight: bold;">担当者:</td><td>{{.Actor}}</td></tr>
</table>
</div>
<p style="color: #666; font-size: 14px;">この通知は週間予定管理システムから自動送信されています。</p>
</div>`))

const stampLayout = "2006/01/02 15:04"

func subject(action entities.NotificationAction, snap entities.TaskSnapshot) string {
	return fmt.Sprintf("【予定%s】%s - %s", action.Label(), snap.CustomerName, snap.SiteName)
}

func renderHTML(action entities.NotificationAction, snap entities.TaskSnapshot, actor string, loc *time.Location) (string, error) {
	data := struct {
		Action string
		Task   entities.TaskSnapshot
		Start  string
		End    string
		Method string
		Actor  string
	}{
		Action: action.Label(),
		Task:   snap,
		Start:  snap.StartAt.In(loc).Format(stampLayout),
		Method: entities.NormalizeTransport(snap.TransportMethod).Label(),
		Actor:  actor,
	}
	if snap.EndAt != nil {
		data.End = snap.EndAt.In(loc).Format(stampLayout)
	}
	var buf bytes.Buffer
	if err := emailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
