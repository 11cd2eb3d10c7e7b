// Package client contains the Client aggregate and its value objects:
// contacts (physical addresses), delivery frequency, and explicit scheduled
// dates tagged by their source. Legacy record shapes - single inline contact
// versus contact lists, admin-set versus self-selected date lists - are
// normalized here, once, at the ingestion boundary.
package client
