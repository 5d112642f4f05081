// Package docapi provides the HTTP client for the remote hypermedia
// content-distribution API.
//
// The API serves JSON collection documents: each document carries
// typed attributes, a profile link, optional enclosure links and
// optional embedded item documents. Authentication uses OAuth2 client
// credentials; requests are rate limited client-side.
package docapi
