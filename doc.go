// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package treeconv defines a stream of structural events shared by readers
// and writers of tree-shaped documents.
//
// # Events
//
// Every supported format is translated into and out of the same five kinds of
// event:
//
//	Kind       | Constructor  | Payload | Description
//	---------- | ------------ | ------- | ------------------------------
//	DocStarted | StartDoc()   | --      | beginning of the document
//	DocEnded   | EndDoc()     | --      | end of the document
//	NodeOpened | Open(name)   | name    | a named node begins
//	NodeClosed | Close(name)  | name    | the most recent node ends
//	ValueAdded | Value(data)  | data    | a leaf value for the open node
//
// A valid stream is a DocStarted, a well-nested sequence of nodes, and a
// DocEnded. Each node either contains other nodes or exactly one value,
// never both:
//
//	carriers.personal.name = "Telecom Personal"
//
// is described by
//
//	DocStarted
//	NodeOpened(carriers)
//	NodeOpened(personal)
//	NodeOpened(name)
//	ValueAdded("Telecom Personal")
//	NodeClosed(name)
//	NodeClosed(personal)
//	NodeClosed(carriers)
//	DocEnded
//
// # Readers and Handlers
//
// A Reader parses a source document and pushes its events to an EventLog.
// The EventLog delivers each event, synchronously and in order, to its
// handlers. If a handler fails, delivery stops and Push reports a
// *ProcessingError:
//
//	elog := treeconv.NewEventLog()
//	elog.AddHandler(jsondoc.NewHandler(w))
//	if err := propdoc.Read(input, elog); err != nil {
//	   log.Fatalf("Conversion failed: %v", err)
//	}
//
// Document handlers are built from a Builder, whose methods correspond to the
// kinds of event, using NewDocumentHandler.
//
// The propdoc, jsondoc, and xmldoc packages provide a reader and a handler for
// each format. Package convert connects them.
package treeconv
