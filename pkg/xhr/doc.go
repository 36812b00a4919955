// Package xhr makes HTTP requests through a connection with the
// open / send / ready-state lifecycle of XMLHttpRequest.
//
// Client.Request wires the lifecycle up: it opens a Conn, applies
// headers and properties, encodes a JSON body, decodes JSON responses
// and reports the outcome exactly once, both to a callback and through
// the returned Call:
//
//	c := xhr.NewClient()
//	call := c.Request(ctx, "https://example.com/api", func(err error, body any, conn xhr.Conn) {
//		if err != nil {
//			var se *xhr.StatusError
//			if errors.As(err, &se) {
//				log.Printf("status %d", se.Status)
//			}
//			return
//		}
//		fmt.Println(body)
//	}, xhr.Options{JSON: map[string]any{"q": "x"}, Method: "POST"})
//	resp, err := call.Wait(ctx)
//
// The default transport runs on net/http. Any Transport whose Conn
// follows the lifecycle can replace it.
package xhr
