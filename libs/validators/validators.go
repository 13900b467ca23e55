package validators

import (
	"github.com/asaskevich/govalidator"
	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
)

func init() {
	govalidator.TagMap["uuid4orempty"] = govalidator.Validator(IsUUIDOrEmpty)
	govalidator.TagMap["platform"] = govalidator.Validator(IsPlatform)
	govalidator.CustomTypeTagMap.Set("requiredUUID", govalidator.CustomTypeValidator(IsRequiredUUID))
	govalidator.CustomTypeTagMap.Set("positiveDecimal", govalidator.CustomTypeValidator(IsPositiveDecimal))
}

// Platforms recognized in client annotations
var Platforms = []string{"ios", "android", "osx", "windows", "linux"}

// IsPlatform determines whether or not a given string is a recognized platform
func IsPlatform(platform string) bool {
	return govalidator.IsIn(platform, Platforms...)
}

// IsRequiredUUID checks if the uuid is present
func IsRequiredUUID(i interface{}, context interface{}) bool {
	switch v := i.(type) {
	case uuid.UUID:
		return !uuid.Equal(v, uuid.Nil)
	case *uuid.UUID:
		return v != nil && !uuid.Equal(*v, uuid.Nil)
	default:
		panic("invalid type recieved in IsRequiredUUID")
	}
}

// IsPositiveDecimal checks the decimal is strictly greater than zero
func IsPositiveDecimal(i interface{}, context interface{}) bool {
	switch v := i.(type) {
	case decimal.Decimal:
		return v.IsPositive()
	case *decimal.Decimal:
		return v != nil && v.IsPositive()
	default:
		panic("invalid type recieved in IsPositiveDecimal")
	}
}

// IsUUID checks if the string is a valid UUID
func IsUUID(v string) bool {
	_, err := uuid.FromString(v)
	return err == nil
}

// IsUUIDOrEmpty checks if the string is empty or a valid UUID
func IsUUIDOrEmpty(v string) bool {
	return v == "" || IsUUID(v)
}
