package hive

import "github.com/go-data-exporter/adomd/typemap"

// Registry maps HiveServer2 column types, as reported without the "_TYPE"
// suffix. Complex and interval types arrive as text and stay strings.
var Registry = typemap.NewRegistry(map[string]typemap.Descriptor{
	"BOOLEAN": {TypeName: typemap.TypeBool, Convert: typemap.ToBool},

	"TINYINT":  {TypeName: typemap.TypeInt, Convert: typemap.ToInt},
	"SMALLINT": {TypeName: typemap.TypeInt, Convert: typemap.ToInt},
	"INT":      {TypeName: typemap.TypeInt, Convert: typemap.ToInt},
	"BIGINT":   {TypeName: typemap.TypeInt, Convert: typemap.ToInt},

	"FLOAT":   {TypeName: typemap.TypeFloat, Convert: typemap.ToFloat},
	"DOUBLE":  {TypeName: typemap.TypeFloat, Convert: typemap.ToFloat},
	"DECIMAL": {TypeName: typemap.TypeDecimal, Convert: typemap.ToDecimal},

	"STRING":  {TypeName: typemap.TypeString, Convert: typemap.ToString},
	"VARCHAR": {TypeName: typemap.TypeString, Convert: typemap.ToString},
	"CHAR":    {TypeName: typemap.TypeString, Convert: typemap.ToString},

	"TIMESTAMP":           {TypeName: typemap.TypeDateTime, Convert: typemap.ToTime},
	"TIMESTAMPLOCALTZ":    {TypeName: typemap.TypeDateTime, Convert: typemap.ToTime},
	"DATE":                {TypeName: typemap.TypeDateTime, Convert: typemap.ToTime},
	"INTERVAL_YEAR_MONTH": {TypeName: typemap.TypeString, Convert: typemap.ToString},
	"INTERVAL_DAY_TIME":   {TypeName: typemap.TypeString, Convert: typemap.ToString},

	"BINARY": {TypeName: typemap.TypeBytes, Convert: typemap.ToBytes},
	"NULL":   {TypeName: typemap.TypeNull},

	"ARRAY":        {TypeName: typemap.TypeString, Convert: typemap.ToString},
	"MAP":          {TypeName: typemap.TypeString, Convert: typemap.ToString},
	"STRUCT":       {TypeName: typemap.TypeString, Convert: typemap.ToString},
	"UNION":        {TypeName: typemap.TypeString, Convert: typemap.ToString},
	"USER_DEFINED": {TypeName: typemap.TypeString, Convert: typemap.ToString},
})
