// Package lookups holds the static region and service tables served to
// onboarding forms.
package lookups

// Region is a geographic area a supplier can operate in.
type Region struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Country      string `json:"country"`
}

// SupplyChainService is a service category a supplier can offer.
type SupplyChainService struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Regions returns the full region table.
func Regions() []Region {
	return regions
}

// Services returns the supply-chain service table.
func Services() []SupplyChainService {
	return supplyChainServices
}

var regions = []Region{
	{"Avon", "AVN", "England"},
	{"Bedfordshire", "BDF", "England"},
	{"Berkshire", "BRK", "England"},
	{"Buckinghamshire", "BKM", "England"},
	{"Cambridgeshire", "CAM", "England"},
	{"Cheshire", "CHS", "England"},
	{"Cleveland", "CLV", "England"},
	{"Cornwall", "CON", "England"},
	{"Cumbria", "CMA", "England"},
	{"Derbyshire", "DBY", "England"},
	{"Devon", "DEV", "England"},
	{"Dorset", "DOR", "England"},
	{"Durham", "DUR", "England"},
	{"East Sussex", "SXE", "England"},
	{"Essex", "ESS", "England"},
	{"Gloucestershire", "GLS", "England"},
	{"Hampshire", "HAM", "England"},
	{"Herefordshire", "HEF", "England"},
	{"Hertfordshire", "HRT", "England"},
	{"Isle of Wight", "IOW", "England"},
	{"Kent", "KEN", "England"},
	{"Lancashire", "LAN", "England"},
	{"Leicestershire", "LEI", "England"},
	{"Lincolnshire", "LIN", "England"},
	{"London", "LDN", "England"},
	{"Merseyside", "MSY", "England"},
	{"Norfolk", "NFK", "England"},
	{"Northamptonshire", "NTH", "England"},
	{"Northumberland", "NBL", "England"},
	{"North Yorkshire", "NYK", "England"},
	{"Nottinghamshire", "NTT", "England"},
	{"Oxfordshire", "OXF", "England"},
	{"Rutland", "RUT", "England"},
	{"Shropshire", "SAL", "England"},
	{"Somerset", "SOM", "England"},
	{"South Yorkshire", "SYK", "England"},
	{"Staffordshire", "STS", "England"},
	{"Suffolk", "SFK", "England"},
	{"Surrey", "SRY", "England"},
	{"Tyne and Wear", "TWR", "England"},
	{"Warwickshire", "WAR", "England"},
	{"West Midlands", "WMD", "England"},
	{"West Sussex", "SXW", "England"},
	{"West Yorkshire", "WYK", "England"},
	{"Wiltshire", "WIL", "England"},
	{"Worcestershire", "WOR", "England"},
	{"Clwyd", "CWD", "Wales"},
	{"Dyfed", "DFD", "Wales"},
	{"Gwent", "GNT", "Wales"},
	{"Gwynedd", "GWN", "Wales"},
	{"Mid Glamorgan", "MGM", "Wales"},
	{"Powys", "POW", "Wales"},
	{"South Glamorgan", "SGM", "Wales"},
	{"West Glamorgan", "WGM", "Wales"},
	{"Aberdeenshire", "ABD", "Scotland"},
	{"Angus", "ANS", "Scotland"},
	{"Argyll", "ARL", "Scotland"},
	{"Ayrshire", "AYR", "Scotland"},
	{"Banffshire", "BAN", "Scotland"},
	{"Berwickshire", "BEW", "Scotland"},
	{"Bute", "BUT", "Scotland"},
	{"Caithness", "CAI", "Scotland"},
	{"Clackmannanshire", "CLK", "Scotland"},
	{"Dumfriesshire", "DGY", "Scotland"},
	{"Dunbartonshire", "DNB", "Scotland"},
	{"East Lothian", "ELN", "Scotland"},
	{"Fife", "FIF", "Scotland"},
	{"Inverness-shire", "INV", "Scotland"},
	{"Kincardineshire", "KCD", "Scotland"},
	{"Kinross-shire", "KRS", "Scotland"},
	{"Kirkcudbrightshire", "KKD", "Scotland"},
	{"Lanarkshire", "LKS", "Scotland"},
	{"Midlothian", "MLN", "Scotland"},
	{"Moray", "MOR", "Scotland"},
	{"Nairnshire", "NAI", "Scotland"},
	{"Orkney", "OKI", "Scotland"},
	{"Peeblesshire", "PEE", "Scotland"},
	{"Perthshire", "PER", "Scotland"},
	{"Renfrewshire", "RFW", "Scotland"},
	{"Ross-shire", "ROC", "Scotland"},
	{"Roxburghshire", "ROX", "Scotland"},
	{"Selkirkshire", "SEL", "Scotland"},
	{"Shetland", "SHI", "Scotland"},
	{"Stirlingshire", "STI", "Scotland"},
	{"Sutherland", "SUT", "Scotland"},
	{"West Lothian", "WLN", "Scotland"},
	{"Wigtownshire", "WIG", "Scotland"},
	{"Antrim", "ANT", "Northern Ireland"},
	{"Armagh", "ARM", "Northern Ireland"},
	{"Down", "DOW", "Northern Ireland"},
	{"Fermanagh", "FER", "Northern Ireland"},
	{"Londonderry", "LDY", "Northern Ireland"},
	{"Tyrone", "TYR", "Northern Ireland"},
}

var supplyChainServices = []SupplyChainService{
	{"Warehousing", "Storage"},
	{"Inventory Management", "Storage"},
	{"Freight Forwarding", "Transportation"},
	{"Customs Clearance", "Compliance"},
	{"Procurement", "Sourcing"},
	{"Supplier Auditing", "Compliance"},
	{"Packaging and Labeling", "Processing"},
	{"Last-Mile Delivery", "Transportation"},
	{"Reverse Logistics", "Returns"},
	{"Demand Planning", "Planning"},
	{"Route Optimization", "Technology"},
	{"Cold Chain Logistics", "Specialized"},
	{"E-Commerce Fulfillment", "Fulfillment"},
	{"Drop Shipping", "Fulfillment"},
	{"Quality Assurance", "Inspection"},
	{"Supply Chain Analytics", "Technology"},
	{"Sustainability Consulting", "Consulting"},
	{"Fleet Management", "Transportation"},
	{"Custom Product Assembly", "Processing"},
	{"Integrated Logistics Solutions", "Comprehensive"},
}
