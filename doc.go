/*
Package adomd is a client adapter exposing connection, cursor and fetch
operations over a tabular analytics query engine (DAX queries). Query
execution, transport and authentication are delegated to an engine
implementation behind the interfaces in package engine.

# Overview

A Connection owns one engine handle. Cursors run queries on it and turn the
engine's raw values into Go values through a typemap.Registry:

	conn, err := adomd.Connect(connector, "Data Source=...;Catalog=Sales")
	if err != nil {
		log.Fatal(err)
	}
	err = conn.Use(func(conn *adomd.Connection) error {
		cur, err := conn.Cursor().ExecuteDAX(`EVALUATE 'Product'`, adomd.QueryName("products"))
		if err != nil {
			return err
		}
		defer cur.Close()
		for row, err := range cur.FetchStream() {
			if err != nil {
				return err
			}
			fmt.Println(row)
		}
		return nil
	})

# Rows

ExecuteDAX only prepares the result. Next advances it; FetchOne and
FetchOneTuple convert the current row. FetchMany, FetchAll, FetchStream and
FetchStreamTuple advance on their own. A stream is single-use: once the result is exhausted,
ranging over it again yields no rows.

Values are converted by field type identifier. With the default
typemap.ADOMD registry, decimals become decimal.Decimal without passing
through float64, and datetimes keep the offset the engine reports. An
identifier missing from the registry fails with ErrUnmappedFieldType.

# XML results

ExecuteXML concatenates the engine's outer XML fragments, parses them with
etree and decodes escaped element names: every "_"-separated segment of the
form x + four uppercase hex digits is replaced by the character it encodes.

# Errors

Engine "unknown response" failures while advancing a result end the result
early instead of failing; this may silently truncate data. Every other error
is returned to the caller. Open and close failures are classified as
ErrEngineUnavailable, reads on closed results as ErrClosed and unparsable XML
as ErrMalformedXML.

# Concurrency

Connections and cursors are synchronous and not safe for concurrent use. Use
one Connection per goroutine. There is no timeout at this layer; configure it
through the engine connection string.
*/
package adomd
