package model

// Organization is a circuit-wide church organization.
type Organization string

const (
	OrgChildrensMinistry  Organization = "childrens_ministry"
	OrgJuniorManyano      Organization = "junior_manyano"
	OrgWesleyGuild        Organization = "wesley_guild"
	OrgYoungMensGuild     Organization = "young_mens_guild"
	OrgYoungWomensManyano Organization = "young_womens_manyano"
	OrgWomensManyano      Organization = "womens_manyano"
	OrgWomensFellowship   Organization = "womens_fellowship"
	OrgLocationPreachers  Organization = "location_preachers"
	OrgMusicAssociation   Organization = "music_association"
)

var organizationNames = map[Organization]string{
	OrgChildrensMinistry:  "Children's Ministry",
	OrgJuniorManyano:      "Junior Manyano",
	OrgWesleyGuild:        "Wesley Guild",
	OrgYoungMensGuild:     "Young Men's Guild",
	OrgYoungWomensManyano: "Young Women's Manyano",
	OrgWomensManyano:      "Women's Manyano",
	OrgWomensFellowship:   "Women's Fellowship",
	OrgLocationPreachers:  "Location Preacher's Association",
	OrgMusicAssociation:   "Music Association (Church Choir)",
}

// Organizations returns the nine organizations in display order.
func Organizations() []Organization {
	return []Organization{
		OrgChildrensMinistry,
		OrgJuniorManyano,
		OrgWesleyGuild,
		OrgYoungMensGuild,
		OrgYoungWomensManyano,
		OrgWomensManyano,
		OrgWomensFellowship,
		OrgLocationPreachers,
		OrgMusicAssociation,
	}
}

// Valid reports whether o is a known organization key.
func (o Organization) Valid() bool {
	_, ok := organizationNames[o]
	return ok
}

// Name returns the display name, or the raw key when unknown.
func (o Organization) Name() string {
	if n, ok := organizationNames[o]; ok {
		return n
	}
	return string(o)
}
