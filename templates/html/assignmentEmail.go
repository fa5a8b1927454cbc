package templates

import (
	"fmt"
	"html"
)

// RenderOfficerAssignedEmail generates the HTML sent to a complainant
// when an officer picks up their case.
func RenderOfficerAssignedEmail(recipientName, officerName, caseNumber string) string {
	safeName := html.EscapeString(recipientName)
	safeOfficer := html.EscapeString(officerName)
	safeCase := html.EscapeString(caseNumber)

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>Officer Assigned - Case %s</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f3f4f6; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background: linear-gradient(135deg, #1e3a8a 0%%, #2563eb 100%%); padding: 40px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 24px; font-weight: 700; }
    .content { padding: 40px 30px; color: #1f2937; line-height: 1.6; font-size: 15px; }
    .content h2 { color: #111827; margin-top: 0; }
    .case-box { background: rgba(37, 99, 235, 0.08); border: 1px solid rgba(37, 99, 235, 0.25); border-radius: 12px; padding: 20px; margin: 20px 0; }
    .case-box h3 { color: #1e3a8a; margin-top: 0; font-size: 16px; }
    .footer { padding: 30px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid rgba(0,0,0,0.1); }
    .footer a { color: #2563eb; text-decoration: none; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Officer Assigned</h1>
    </div>
    <div class="content">
      <h2>Hello %s,</h2>
      <p><strong>%s</strong> has been assigned to your case.</p>
      <div class="case-box">
        <h3>Case %s</h3>
        <p style="margin-bottom: 0;">You can follow progress anytime on the complaint tracking page using your case number.</p>
      </div>
      <p>We will notify you again when the status of your case changes.</p>
    </div>
    <div class="footer">
      <p>&copy; Police Positive</p>
      <p>This is an automated message, please do not reply.</p>
    </div>
  </div>
</body>
</html>`, safeCase, safeName, safeOfficer, safeCase)
}
