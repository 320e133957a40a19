// Copyright (c) 2025 Gymkompaniet AB.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package mailer sends the winner notification mail.

The Sender interface is what handlers depend on; tests inject a fake.
SMTPSender is the production implementation on go-mail, using the
SMTP_* configuration (STARTTLS when SMTP_TLS=true, PLAIN auth when
credentials are set).

Notification is strictly best-effort: it runs after the contact
transaction has committed and a failure is reported to the caller only
as emailSent:false.
*/
package mailer
