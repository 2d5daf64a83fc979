/*
Package domain contains the settings model shared by the AutoQuote host code.

It decodes the opaque key-value blob owned by the chat front-end into an
immutable Settings snapshot, and derives the configuration of the line
rewriter and the paragraph annotator from it. The package performs no I/O.

# Key Entities

  - Settings: one snapshot of the extension settings (enabled flags and colors).
  - SettingsDiff: the keys that changed between two snapshots.
*/
package domain
