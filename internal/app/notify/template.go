package notify

import (
	"bytes"
	"embed"
	"fmt"
	htmlTemplate "html/template"
	"io"
	"text/template"

	"github.com/argus-sec/argus-portal/internal/domain"
)

//go:embed tpl_files/*
var TemplateFiles embed.FS

// TemplateHandler is a struct that holds the html and text templates.
type TemplateHandler struct {
	portalUrl     string
	htmlTemplates *htmlTemplate.Template
	textTemplates *template.Template
}

func newTemplateHandler(portalUrl string) (*TemplateHandler, error) {
	htmlTemplateCache, err := htmlTemplate.New("Html").ParseFS(TemplateFiles, "tpl_files/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to parse html template files: %w", err)
	}

	txtTemplateCache, err := template.New("Txt").ParseFS(TemplateFiles, "tpl_files/*.gotpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text template files: %w", err)
	}

	handler := &TemplateHandler{
		portalUrl:     portalUrl,
		htmlTemplates: htmlTemplateCache,
		textTemplates: txtTemplateCache,
	}

	return handler, nil
}

// GetAlertMail returns the text and html body for a security alert
// notification.
func (c TemplateHandler) GetAlertMail(alert domain.SecurityAlert) (io.Reader, io.Reader, error) {
	var tplBuff bytes.Buffer
	var htmlTplBuff bytes.Buffer

	err := c.textTemplates.ExecuteTemplate(&tplBuff, "alert_raised.gotpl", map[string]any{
		"Alert":     alert,
		"PortalUrl": c.portalUrl,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to execute template alert_raised.gotpl: %w", err)
	}

	err = c.htmlTemplates.ExecuteTemplate(&htmlTplBuff, "alert_raised.gohtml", map[string]any{
		"Alert":     alert,
		"PortalUrl": c.portalUrl,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to execute template alert_raised.gohtml: %w", err)
	}

	return &tplBuff, &htmlTplBuff, nil
}

// GetAuditCompletedMail returns the text and html body for an audit completion
// notification.
func (c TemplateHandler) GetAuditCompletedMail(audit domain.Audit) (io.Reader, io.Reader, error) {
	var tplBuff bytes.Buffer
	var htmlTplBuff bytes.Buffer

	err := c.textTemplates.ExecuteTemplate(&tplBuff, "audit_completed.gotpl", map[string]any{
		"Audit":     audit,
		"PortalUrl": c.portalUrl,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to execute template audit_completed.gotpl: %w", err)
	}

	err = c.htmlTemplates.ExecuteTemplate(&htmlTplBuff, "audit_completed.gohtml", map[string]any{
		"Audit":     audit,
		"PortalUrl": c.portalUrl,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to execute template audit_completed.gohtml: %w", err)
	}

	return &tplBuff, &htmlTplBuff, nil
}
