package transform

import "github.com/tumbleweedd/shopify_klaviyo_sync/internal/domain/models"

func customerIdentity(c *models.Customer) models.CustomerIdentity {
	return models.CustomerIdentity{
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
	}
}

// customerProperties copies the default address only when the customer has
// one. Each copied field stays nil, and so is omitted, when its source is nil.
func customerProperties(c *models.Customer) models.CustomerProperties {
	props := models.CustomerProperties{
		CustomerIdentity: customerIdentity(c),
		Phone:            cloneString(c.Phone),
	}

	addr := c.DefaultAddress
	if addr == nil {
		return props
	}

	props.Address1 = cloneString(addr.Address1)
	props.Address2 = cloneString(addr.Address2)
	props.City = cloneString(addr.City)
	props.Zip = cloneString(addr.Zip)
	props.Region = cloneString(addr.ProvinceCode)
	props.Country = cloneString(addr.CountryName)

	return props
}

func eventAddress(a *models.Address) *models.EventAddress {
	if a == nil {
		return nil
	}

	return &models.EventAddress{
		FirstName:   cloneString(a.FirstName),
		LastName:    cloneString(a.LastName),
		Company:     cloneString(a.Company),
		Address1:    cloneString(a.Address1),
		Address2:    cloneString(a.Address2),
		City:        cloneString(a.City),
		Region:      cloneString(a.Province),
		RegionCode:  cloneString(a.ProvinceCode),
		Country:     cloneString(a.Country),
		CountryCode: cloneString(a.CountryCode),
		Zip:         cloneString(a.Zip),
		Phone:       cloneString(a.Phone),
	}
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}

	v := *p
	return &v
}

func cloneInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}

	v := *p
	return &v
}
