// Package parkhub provides a Go client for batch parking pass creation
// against the ParkHub API.
//
// The client authenticates every call with a Bearer API key, classifies
// every failure into a closed error taxonomy, and retries transient
// failures with exponential backoff. Batches are fanned out in bounded
// chunks; one item failing never affects its siblings.
//
//	client, _ := parkhub.New(
//	    parkhub.WithBaseURL("https://api.parkhub.com/v1"),
//	    parkhub.WithLandmark("lm-123"),
//	    parkhub.WithAPIKey(os.Getenv("PARKHUB_API_KEY")),
//	)
//
//	summary, _ := client.Passes().CreateBatch(ctx, "evt-9", requests)
//	if summary.TotalFailed() > 0 {
//	    retry := summary.FailedRequests(parkhub.RetryDefaults{
//	        AccountID: "acc-1", SpotType: "vip", LotID: "lot-4",
//	    })
//	    summary, _ = client.Passes().CreateBatch(ctx, "evt-9", retry)
//	}
//
// Failures come back as *parkhub.Error. Switch on Kind and Code instead of
// matching message strings:
//
//	var perr *parkhub.Error
//	if errors.As(err, &perr) && perr.Kind == parkhub.KindAuthentication {
//	    // rotate the credential and try again
//	}
package parkhub
