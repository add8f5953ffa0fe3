// Package codec holds the wire types of the wasp client and their canonical
// byte layouts: tagged argument sets, view results and token transfers.
// Every function here is pure; nothing touches the network.
package codec
