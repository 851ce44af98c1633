package typemap

// ADOMD maps the .NET type names the ADOMD.NET client reports for result
// columns (Type.ToString()).
var ADOMD = NewRegistry(map[string]Descriptor{
	"System.Boolean": {TypeBool, ToBool},

	"System.Byte":  {TypeInt, ToInt},
	"System.SByte": {TypeInt, ToInt},
	"System.Int16": {TypeInt, ToInt},
	"System.Int32": {TypeInt, ToInt},
	"System.Int64": {TypeInt, ToInt},

	"System.UInt16": {TypeUint, ToUint},
	"System.UInt32": {TypeUint, ToUint},
	"System.UInt64": {TypeUint, ToUint},

	"System.Single":  {TypeFloat, ToFloat},
	"System.Double":  {TypeFloat, ToFloat},
	"System.Decimal": {TypeDecimal, ToDecimal},

	"System.String": {TypeString, ToString},
	"System.Char":   {TypeString, ToString},
	"System.Guid":   {TypeUUID, ToUUID},

	"System.DateTime":       {TypeDateTime, ToTime},
	"System.DateTimeOffset": {TypeDateTime, ToTime},
	"System.TimeSpan":       {TypeDuration, ToDuration},

	"System.Byte[]": {TypeBytes, ToBytes},
	"System.DBNull": {TypeNull, nil},
	"System.Object": {TypeObject, Identity},
})
