// Package codec writes result rows in export formats.
package codec

import (
	"io"

	csvcodec "github.com/go-data-exporter/adomd/codec/csv"
	htmlcodec "github.com/go-data-exporter/adomd/codec/html"
	jsoncodec "github.com/go-data-exporter/adomd/codec/json"
	xmlcodec "github.com/go-data-exporter/adomd/codec/xml"
	"github.com/go-data-exporter/adomd/scanner"
)

// Codec writes every row of rows to writer.
type Codec interface {
	Write(rows scanner.Rows, writer io.Writer) error
}

func JSON(opts ...jsoncodec.Option) Codec {
	return jsoncodec.New(opts...)
}

func CSV(opts ...csvcodec.Option) Codec {
	return csvcodec.New(opts...)
}

func XML(opts ...xmlcodec.Option) Codec {
	return xmlcodec.New(opts...)
}

func HTML(opts ...htmlcodec.Option) Codec {
	return htmlcodec.New(opts...)
}
