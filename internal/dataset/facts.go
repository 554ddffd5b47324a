package dataset

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Fixed enumerations shared by the generator, the exporters and the
// database schema. Order matters: pick indexes come straight from the
// random source, so reordering an entry changes generated datasets.

var Categories = []string{
	"Electronics", "Clothing", "Home & Garden", "Books", "Sports & Outdoors",
	"Toys & Games", "Health & Beauty", "Automotive", "Food & Beverages", "Pet Supplies",
}

var OrderStatuses = []string{"Pending", "Processing", "Shipped", "Delivered", "Cancelled"}

var PaymentMethods = []string{"Credit Card", "Debit Card", "PayPal", "Bank Transfer", "Cash on Delivery"}

var productTypes = map[string][]string{
	"Electronics":       {"Smartphone", "Laptop", "Tablet", "Headphones", "Smartwatch", "Camera", "Speaker"},
	"Clothing":          {"T-Shirt", "Jeans", "Dress", "Jacket", "Shoes", "Hat", "Sunglasses"},
	"Home & Garden":     {"Lamp", "Chair", "Table", "Plant Pot", "Garden Tool", "Cushion", "Curtain"},
	"Books":             {"Novel", "Textbook", "Cookbook", "Biography", "Mystery", "Science Fiction", "Fantasy"},
	"Sports & Outdoors": {"Bicycle", "Tent", "Running Shoes", "Yoga Mat", "Dumbbells", "Basketball", "Tennis Racket"},
	"Toys & Games":      {"Board Game", "Action Figure", "Puzzle", "Doll", "RC Car", "Building Set", "Card Game"},
	"Health & Beauty":   {"Shampoo", "Perfume", "Skincare Set", "Makeup Kit", "Vitamins", "Hair Dryer", "Face Mask"},
	"Automotive":        {"Car Battery", "Tire", "Oil Filter", "Car Cover", "Floor Mat", "Phone Mount", "Dash Cam"},
	"Food & Beverages":  {"Coffee", "Tea", "Chocolate", "Snacks", "Wine", "Juice", "Cereal"},
	"Pet Supplies":      {"Dog Food", "Cat Litter", "Pet Toy", "Leash", "Pet Bed", "Pet Bowl", "Grooming Kit"},
}

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda",
	"David", "Elizabeth", "William", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Carlos", "Emma", "Daniel", "Olivia", "Henry", "Sophia",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Wilson", "Anderson", "Thomas",
	"Taylor", "Moore", "Jackson", "Martin", "Lee", "Thompson", "White", "Harris", "Clark",
}

var streetNames = []string{
	"Maple Street", "Oak Avenue", "Cedar Lane", "Pine Road", "Elm Drive",
	"Washington Boulevard", "Lakeview Terrace", "Hillcrest Avenue", "Sunset Drive",
	"River Road", "Park Place", "Highland Avenue", "Meadow Lane", "Birch Court",
}

var cities = []string{
	"Springfield", "Riverton", "Fairview", "Georgetown", "Clinton", "Salem",
	"Madison", "Arlington", "Ashland", "Burlington", "Clayton", "Dayton",
	"Franklin", "Greenville", "Kingston", "Milton", "Newport", "Oxford",
}

var states = []string{
	"Alabama", "Arizona", "California", "Colorado", "Florida", "Georgia",
	"Illinois", "Indiana", "Michigan", "Nevada", "New York", "North Carolina",
	"Ohio", "Oregon", "Pennsylvania", "Texas", "Virginia", "Washington",
}

var countries = []string{
	"United States", "Canada", "United Kingdom", "Germany", "France",
	"Australia", "Netherlands", "Spain", "Italy", "Sweden", "Japan", "Brazil",
}

var companySuffixes = []string{"Inc", "LLC", "Co", "Group", "Labs", "Industries", "Trading", "Supply"}

var emailDomains = []string{"example.com", "mail.test", "shopmail.dev", "inbox.example"}

var sentences = []string{
	"Built to last with quality materials and careful attention to detail.",
	"A popular choice among repeat customers for everyday use.",
	"Lightweight, durable and easy to take anywhere you go.",
	"Designed with comfort in mind without compromising on style.",
	"An excellent value that outperforms products twice the price.",
	"Backed by a generous warranty and responsive customer support.",
	"Arrived quickly and matched the description exactly.",
	"Works exactly as advertised and setup took only minutes.",
	"The finish feels premium and the sizing runs true.",
	"Would happily purchase this again and recommend it to friends.",
	"Not perfect, but a solid pick at this price point.",
	"Quality exceeded expectations given the modest cost.",
}

// Facts deals out fake-but-plausible field values from fixed fact tables.
// Every method consumes integers from the underlying Source in a fixed
// order, which is what makes seeded generation reproducible.
type Facts struct {
	src      Source
	emailSeq int
	skusSeen map[string]bool
}

func NewFacts(src Source) *Facts {
	return &Facts{src: src, skusSeen: make(map[string]bool)}
}

func (f *Facts) pick(list []string) string {
	return list[f.src.Intn(len(list))]
}

func (f *Facts) FirstName() string { return f.pick(firstNames) }
func (f *Facts) LastName() string  { return f.pick(lastNames) }

// Email builds a unique address from the owner's name. The running
// sequence number keeps addresses unique even when names collide.
func (f *Facts) Email(first, last string) string {
	f.emailSeq++
	return fmt.Sprintf("%s.%s%d@%s",
		strings.ToLower(first), strings.ToLower(last), f.emailSeq, f.pick(emailDomains))
}

func (f *Facts) Phone() string {
	return fmt.Sprintf("+1-%03d-%03d-%04d", 200+f.src.Intn(800), f.src.Intn(1000), f.src.Intn(10000))
}

func (f *Facts) StreetAddress() string {
	return fmt.Sprintf("%d %s", 1+f.src.Intn(9899), f.pick(streetNames))
}

func (f *Facts) City() string    { return f.pick(cities) }
func (f *Facts) State() string   { return f.pick(states) }
func (f *Facts) Country() string { return f.pick(countries) }

func (f *Facts) ZipCode() string {
	return fmt.Sprintf("%05d", f.src.Intn(100000))
}

func (f *Facts) Company() string {
	return f.pick(lastNames) + " " + f.pick(companySuffixes)
}

func (f *Facts) Category() string { return f.pick(Categories) }

// ProductType draws a product noun for the category.
func (f *Facts) ProductType(category string) string {
	types, ok := productTypes[category]
	if !ok {
		return "Product"
	}
	return f.pick(types)
}

func (f *Facts) OrderStatus() string   { return f.pick(OrderStatuses) }
func (f *Facts) PaymentMethod() string { return f.pick(PaymentMethods) }

// Paragraph joins between min and max fact sentences.
func (f *Facts) Paragraph(min, max int) string {
	n := min
	if max > min {
		n += f.src.Intn(max - min + 1)
	}
	parts := make([]string, n)
	for i := range parts {
		parts[i] = f.pick(sentences)
	}
	return strings.Join(parts, " ")
}

const skuLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// SKU returns a unique SKU-####-AAAA code. Collisions re-draw, which is
// itself deterministic under a seeded source.
func (f *Facts) SKU() string {
	for {
		var b strings.Builder
		b.WriteString("SKU-")
		for i := 0; i < 4; i++ {
			b.WriteByte('0' + byte(f.src.Intn(10)))
		}
		b.WriteByte('-')
		for i := 0; i < 4; i++ {
			b.WriteByte(skuLetters[f.src.Intn(len(skuLetters))])
		}
		sku := b.String()
		if !f.skusSeen[sku] {
			f.skusSeen[sku] = true
			return sku
		}
	}
}

// CentsBetween draws a 2dp money amount in [min, max] cents inclusive.
func (f *Facts) CentsBetween(min, max int) decimal.Decimal {
	return decimal.New(int64(min+f.src.Intn(max-min+1)), -2)
}

// RatingBetween draws a 1dp rating in [min, max], e.g. 3.0..5.0.
func (f *Facts) RatingBetween(min, max float64) float64 {
	lo, hi := int(min*10), int(max*10)
	return float64(lo+f.src.Intn(hi-lo+1)) / 10
}

func (f *Facts) IntBetween(min, max int) int {
	return min + f.src.Intn(max-min+1)
}

// Index draws a slice index in [0, n).
func (f *Facts) Index(n int) int {
	return f.src.Intn(n)
}

// DateBetween draws a date in [start, end]. When the range is empty it
// returns start.
func (f *Facts) DateBetween(start, end Date) Date {
	days := start.DaysUntil(end)
	if days <= 0 {
		return start
	}
	return start.AddDays(f.src.Intn(days + 1))
}

func (f *Facts) Coin() bool {
	return f.src.Intn(2) == 1
}

// SampleIndexes draws k distinct indexes from [0, n) by partial
// Fisher-Yates, consuming exactly k integers from the source.
func (f *Facts) SampleIndexes(n, k int) []int {
	if k > n {
		k = n
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + f.src.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}
