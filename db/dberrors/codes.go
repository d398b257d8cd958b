package dberrors

// Numeric ranges of MySQL error numbers.
// 1 to 999 are global codes shared by the server and the client library,
// 1000 onwards are server codes, 2000 to 2999 are reserved to the client library.
const (
	// ERErrorFirst is the first error number reserved to the server
	ERErrorFirst = 1000
	// CRMinError is the first error number reserved to the client library
	CRMinError = 2000
	// CRMaxError is the highest error number a client library may report
	CRMaxError = 2999
)

// MySQL server error numbers known to the classification table.
const (
	ERDBCreateExists                = 1007
	ERBadDBError                    = 1049
	ERBadFieldError                 = 1054
	ERWrongValueCount               = 1058
	ERDupEntry                      = 1062
	ERParseError                    = 1064
	ERWrongDBName                   = 1102
	ERWrongTableName                = 1103
	ERFieldSpecifiedTwice           = 1110
	ERInvalidGroupFuncUse           = 1111
	ERUnsupportedExtension          = 1112
	ERTableMustHaveColumns          = 1113
	ERNoSuchTable                   = 1146
	ERSyntaxError                   = 1149
	ERPrimaryCantHaveNull           = 1171
	ERCantDoThisDuringAnTransaction = 1179
	ERWarningNotCompleteRollback    = 1196
	ERCannotAddForeign              = 1215
	ERNoReferencedRow               = 1216
	ERRowIsReferenced               = 1217
	ERNoDefault                     = 1230
	ERNotSupportedYet               = 1235
	ERWarnNullToNotnull             = 1263
	ERWarnDataOutOfRange            = 1264
	ERWarnDataTruncated             = 1265
	ERUnknownStorageEngine          = 1286
	ERFeatureDisabled               = 1289
	ERDataTooLong                   = 1406
	ERDatetimeFunctionOverflow      = 1441
	ERRowIsReferenced2              = 1451
	ERNoReferencedRow2              = 1452
)

// Client library error numbers that drivers commonly surface.
const (
	CRUnknownError      = 2000
	CRConnectionError   = 2002
	CRConnHostError     = 2003
	CRServerGoneError   = 2006
	CRServerLost        = 2013
	CRCommandsOutOfSync = 2014
	CRMalformedPacket   = 2027
)
