// Package upstream implements the transport client for the provisioning
// API that holds the billing records.
//
// The provider is reached through an authenticate-then-query protocol.
// Two quirks shape this package:
//
//   - The accepted parameter names for the identifier range query are
//     not reliably documented, so the client negotiates: four parameter
//     shapes, each tried as POST-JSON, POST-form, and GET-query, first
//     HTTP 200 with usable records wins.
//   - The response envelope varies between a bare record list and a
//     dict nesting the list under one of several known keys, sometimes
//     with a UTF-8 BOM in front. collectRecords flattens all of them.
//
// Tokens are valid for twelve minutes and refreshed lazily; concurrent
// refreshes collapse through singleflight into one authenticate call.
package upstream
