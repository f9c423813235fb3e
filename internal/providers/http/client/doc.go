// Package client provides the HTTP client shared by registry uploads and
// downloads.
//
// Built on go-resty/resty over a pooled go-retryablehttp transport:
//   - One request per operation; retries are disabled so a failed publish
//     never uploads twice
//   - Context-based cancellation and an overall request timeout
//   - Optional rate limiting per client instance
//   - Every request carries an X-Request-ID header for server-side correlation
//   - JSON bodies are encoded and decoded with sonic
//
// Example Usage:
//
//	c := client.NewClient(client.Options{Timeout: 5 * time.Minute, Logger: logger})
//	req, err := c.Request(ctx)
//	if err != nil {
//	    return err
//	}
//	resp, err := req.Get(origin + "/components/widget")
package client
