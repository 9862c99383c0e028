// Package alma provides a client for the Ex Libris Alma REST/XML API.
//
// Alma is a library services platform covering circulation, cataloguing
// and fulfillment. This package translates its item, loan and user
// endpoints into the uniform availability, loan and account model a
// discovery front end consumes, hiding the vendor API's shape,
// pagination and error encoding.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: the API gateway that issues one call at a time and
//     normalizes the outcome into a parsed document or a classified
//     failure
//   - Holdings aggregation: the fan-out that assembles physical,
//     electronic and digital availability for a bibliographic record
//   - Availability decoding: extraction of availability entries from
//     the MARC fields embedded in bib responses
//   - Account operations: fines, holds, loans, renewals, cancellations
//     and blocks for a patron
//
// # Usage
//
// Create a client with your API base URL and key:
//
//	logger := zerolog.New(os.Stdout)
//	client, err := alma.NewClient(
//		"https://api-eu.hosted.exlibrisgroup.com/almaws/v1",
//		"your-api-key",
//		logger,
//		alma.WithTimeout(30*time.Second),
//		alma.WithInventoryTypes([]string{"physical", "electronic"}),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := client.GetHolding(ctx, "991234567890", nil, alma.HoldingOptions{})
//
// # Error Handling
//
// Failures are classified, never conflated with partial results:
//
//   - TransportError: the HTTP call itself failed; never retried
//   - ServerError: HTTP 5xx, or an empty body under a success status
//   - BusinessError: an API-level error parsed from the response body,
//     fatal unless the caller declared that status allowed
//   - ParseError: a response body that is not well-formed XML
//
// A failure in any sub-fetch of a holdings aggregation aborts the whole
// aggregation; callers never see a partially assembled result.
package alma
