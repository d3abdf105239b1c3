/*
Package domain contains the core domain models for the Shopfront engine.

It defines the conversation state machine's vocabulary and the commerce
entities it manipulates. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - State: The enumerated position of a conversation in the dialogue.
  - Event / Payload: A normalized inbound transport event; Payload is a
    closed Text|Selection variant.
  - Product, Cart, CartItem, Customer: Read models of the commerce platform.
  - Reply: The outbound content a handler produces for the transport.
  - AuthError, APIError, StateError, StoreError: The error taxonomy shared
    by all layers.
*/
package domain
