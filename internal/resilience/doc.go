// Package resilience holds the fault tolerance used around outbound calls to
// completion providers and article fetches.
//
// A call is retried with exponential backoff, and every attempt goes through
// a circuit breaker so a failing dependency is rejected quickly:
//
//	cb := circuitbreaker.New(circuitbreaker.ProviderConfig("claude-api"))
//	err := retry.WithBackoff(ctx, retry.CompletionConfig(), func() error {
//	    text, err := circuitbreaker.Run(cb, func() (string, error) {
//	        return complete(ctx, prompt)
//	    })
//	    ...
//	})
package resilience
