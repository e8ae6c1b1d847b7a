package relay

import (
	"fmt"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// successPage renders the post-exchange page: an immediate meta-refresh
// redirect to the app, a timed script fallback, and a manual link as
// the last resort. The redirect URL carries the forwarded token fields
// and nothing else from the exchange.
func successPage(redirectURL string) Node {
	return HTML(
		Head(
			Meta(Charset("UTF-8")),
			TitleEl(Text("Authentication Successful")),
			Meta(Attr("http-equiv", "refresh"), Attr("content", "1;url="+redirectURL)),
			StyleEl(Raw(`
				body {
					font-family: system-ui, sans-serif;
					max-width: 600px;
					margin: 50px auto;
					padding: 20px;
					text-align: center;
				}
				.success { color: #4CAF50; font-size: 48px; margin-bottom: 20px; }
				h1 { color: #333; }
				p { color: #666; font-size: 18px; }
			`)),
			Script(Raw(fmt.Sprintf(`
				setTimeout(function() {
					window.location.href = %q;
				}, 1500);
			`, redirectURL))),
		),
		Body(
			Div(Class("success"), Text("✓")),
			H1(Text("Success!")),
			P(Text("Notion connected successfully.")),
			P(Text("Redirecting you back to the app...")),
			P(
				Style("margin-top: 40px; font-size: 14px;"),
				Text("If you're not redirected automatically, "),
				A(Href(redirectURL), Text("click here to open the app")),
				Text("."),
			),
		),
	)
}

// failurePage renders an authentication failure with a link back into
// the app's own scheme.
func failurePage(message, appScheme string) Node {
	return HTML(
		Head(
			Meta(Charset("UTF-8")),
			TitleEl(Text("Authentication Failed")),
			StyleEl(Raw(`
				body {
					font-family: system-ui, sans-serif;
					max-width: 600px;
					margin: 50px auto;
					padding: 20px;
					text-align: center;
				}
				.failure { color: #D32F2F; font-size: 48px; margin-bottom: 20px; }
				h1 { color: #333; }
				p { color: #666; font-size: 18px; }
			`)),
		),
		Body(
			Div(Class("failure"), Text("✗")),
			H1(Text("Authentication Failed")),
			P(Text(message)),
			P(A(Href(appScheme+"://"), Text("Return to app"))),
		),
	)
}
