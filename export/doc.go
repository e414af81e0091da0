// Package export assembles request-template documents from endpoint nodes
// and drives their materialization through a host-provided Driver.
//
// Import path: github.com/apitree/apitree/export
//
// For each endpoint, [Builder.BuildRequest] combines the synthesizer and
// content selector into a flat list of typed content blocks: method, url,
// headers table, query table, request-body example, and response example.
// The host turns that into a persisted artifact; how (files, editor tabs,
// a platform request document) is entirely the [Driver]'s business.
//
// [Exporter.Export] runs the selected endpoints strictly one at a time so
// directory-creation races cannot occur and progress is reported
// deterministically after each unit of work. A failure on one endpoint is
// logged and recorded; it never aborts the remaining endpoints.
// Cancellation is best-effort: once the context is done, no further
// endpoints are submitted, but an in-flight materialization is not
// interrupted.
package export
