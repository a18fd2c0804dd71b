// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the records shared by the deskkit tools: bills and
// their contributions for the splitter, document pairs and per-item statuses
// for the converter and merger, and the configuration of every subcommand.
package types
