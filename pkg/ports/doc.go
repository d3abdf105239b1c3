/*
Package ports defines the driven ports (interfaces) for the Shopfront engine.

These interfaces decouple the conversation engine from external
implementations, allowing it to work with various session-store backends and
commerce clients.

# Key Interfaces

  - SessionStore: Persists per-conversation state and the customer mapping.
  - Catalog, Carts, Customers: The commerce-platform services the engine drives.

The package also ships RunSessionStoreContract, a reusable test suite that
any SessionStore implementation should pass.
*/
package ports
