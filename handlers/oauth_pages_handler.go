package handlers

import (
	"fmt"
	"html"
	"net/http"
)

// OAuthSuccessPage is the popup landing page after a platform connects.
func (h *Handler) OAuthSuccessPage(w http.ResponseWriter, r *http.Request) {
	platform := html.EscapeString(r.URL.Query().Get("platform"))
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>Connected</title></head>
<body style="font-family: sans-serif; text-align: center; padding-top: 80px;">
	<h1>Successfully Connected</h1>
	<p>Your %s account has been connected. You can close this window.</p>
	<script>
		if (window.opener) {
			window.opener.postMessage({type: 'oauth_success', platform: %q}, '*');
			setTimeout(() => window.close(), 3000);
		}
	</script>
</body>
</html>`, platform, platform)
}

// OAuthErrorPage is the popup landing page when a platform connection fails.
func (h *Handler) OAuthErrorPage(w http.ResponseWriter, r *http.Request) {
	errorType := html.EscapeString(r.URL.Query().Get("error"))
	description := html.EscapeString(r.URL.Query().Get("description"))
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>Connection Failed</title></head>
<body style="font-family: sans-serif; text-align: center; padding-top: 80px;">
	<h1>Connection Failed</h1>
	<p>There was a problem connecting your account.</p>
	<p><strong>Error:</strong> %s<br><strong>Details:</strong> %s</p>
	<script>setTimeout(() => window.close(), 5000);</script>
</body>
</html>`, errorType, description)
}
