/*
Package ports defines the driven ports (interfaces) of the AutoQuote host code.

These interfaces decouple the composer and the decorator from the concrete
host: where the settings blob lives and how rendered paragraphs are reached.

# Key Interfaces

  - SettingsStore: persists the opaque settings blob (memory, file, Loam, buntdb, Redis).
  - Page: lists rendered chat paragraphs and reports newly added ones.
  - Paragraph: reads and replaces the markup of one paragraph.
*/
package ports
