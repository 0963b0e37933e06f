package advisor

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/insurevn/tetadvisor/pkg/catalog"
	"github.com/insurevn/tetadvisor/pkg/intent"
	"github.com/insurevn/tetadvisor/pkg/phase"
	"github.com/insurevn/tetadvisor/pkg/profile"
)

// DefaultQuoteDays is the trip length assumed when the customer has not
// given one. Quote prices scale linearly against this baseline.
const DefaultQuoteDays = 5

// quote base prices per day-baseline, in VND
const (
	quoteBaseDomestic      int64 = 120000
	quoteBaseInternational int64 = 180000
)

// internationalDestinations gets the international quote base; everywhere
// else quotes as domestic.
var internationalDestinations = []string{"thailand", "singapore", "malaysia", "philippines"}

// knownDestinations is scanned in order against the folded user text when
// extracting a destination from a travel inquiry.
var knownDestinations = []string{"thailand", "singapore", "da nang", "nha trang", "phu quoc", "ha noi", "sai gon"}

// Renderer produces the advisor's canned Vietnamese replies for rule mode.
// Every method is a pure function of the profile, the phase and the inputs,
// so rule-mode output is fully deterministic and testable.
type Renderer struct {
	phase      phase.Phase
	classifier *intent.Classifier
}

// NewRenderer creates a renderer for the given season phase.
func NewRenderer(p phase.Phase) *Renderer {
	return &Renderer{phase: p, classifier: intent.NewClassifier()}
}

// Greeting builds the personalized seasonal greeting.
func (r *Renderer) Greeting(p profile.CustomerProfile) string {
	switch r.phase {
	case phase.PreTet:
		return fmt.Sprintf("%s Tết đang đến gần! Bạn đã chuẩn bị gì chưa? 🎊", p.Greeting)
	case phase.Peak:
		return fmt.Sprintf("%s Chúc mừng năm mới! 🧧 Tôi có thể giúp gì cho bạn?", p.Greeting)
	default:
		return fmt.Sprintf("%s Chúc bạn năm mới thật nhiều sức khỏe và thành công! 🎉", p.Greeting)
	}
}

// ProductCard renders the product offer card. During the peak phase the card
// carries the discounted flash-sale price; otherwise it is a plain offer.
func (r *Renderer) ProductCard(id string) string {
	product, err := catalog.Get(id)
	if err != nil {
		return r.FallbackReply()
	}

	if r.phase == phase.Peak {
		special := r.phase.EffectivePrice(product.BasePrice)
		return fmt.Sprintf(`
🎊 **TẾT SPECIAL - %s**

Giá thường: %s VND
🎁 GIÁ TẾT: **%s VND** (Giảm %d%%)

✅ Bảo hiểm: %s
✅ Thời hạn: %s
⏰ Ưu đãi chỉ trong hôm nay!

Bạn có muốn tôi chuẩn bị gói này không?
`, product.Name, catalog.FormatVND(product.BasePrice), catalog.FormatVND(special), r.phase.DiscountPercent(), product.Coverage, product.Duration)
	}

	return fmt.Sprintf(`
📋 **%s**

💰 Giá: %s VND
✅ Bảo hiểm: %s
✅ Thời hạn: %s

Bạn quan tâm đến gói này không?
`, product.Name, catalog.FormatVND(product.BasePrice), product.Coverage, product.Duration)
}

// QuickQuote renders an instant travel insurance quote. International
// destinations take the higher base rate; the total scales linearly with
// trip length against the five-day baseline.
func (r *Renderer) QuickQuote(destination string, days int) string {
	if days <= 0 {
		days = DefaultQuoteDays
	}

	base := quoteBaseDomestic
	folded := strings.ToLower(destination)
	for _, dest := range internationalDestinations {
		if folded == dest {
			base = quoteBaseInternational
			break
		}
	}

	total := base * int64(days) / DefaultQuoteDays

	return fmt.Sprintf(`
✈️ **Báo giá nhanh - Bảo hiểm du lịch**

📍 Điểm đến: %s
📅 Thời gian: %d ngày
💰 Giá: **%s VND**
🛡️ Bảo hiểm: 50,000,000 VND

Bao gồm:
✅ Y tế khẩn cấp
✅ Hành lý thất lạc
✅ Hủy chuyến bay
✅ Hỗ trợ 24/7

Muốn mua ngay không? Chỉ mất 1 phút! ⚡
`, destination, days, catalog.FormatVND(total))
}

// ExtractDestination scans the user text for a known destination and returns
// it title-cased. The first hit in list order wins.
func ExtractDestination(text string) (string, bool) {
	folded := strings.ToLower(text)
	for _, dest := range knownDestinations {
		if strings.Contains(folded, dest) {
			return titleCase(dest), true
		}
	}
	return "", false
}

// ClaimFastTrack renders the four-step accident claim script. Safety comes
// first, paperwork after.
func (r *Renderer) ClaimFastTrack() string {
	return `
🚨 **Hỗ trợ bồi thường ngay lập tức**

Tôi sẽ giúp bạn xử lý nhanh:

**Bước 1:** Bạn có an toàn chứ? Cần liên hệ khẩn cấp không?

**Bước 2:** Vui lòng chụp ảnh:
📸 Thiệt hại/vết thương
📸 Biển số xe (nếu tai nạn giao thông)
📸 Địa điểm xảy ra

**Bước 3:** Gửi ảnh cho tôi ngay

**Bước 4:** Tôi sẽ đăng ký hồ sơ và chuyên viên sẽ gọi cho bạn trong 30 phút

Bạn có thể gửi ảnh cho tôi bây giờ không?
`
}

// PaymentReply confirms interest and lists the payment channels.
func (r *Renderer) PaymentReply() string {
	return `
Tuyệt vời! 🎉

Tôi sẽ chuẩn bị hồ sơ cho bạn. Thanh toán qua:
💳 MoMo
💳 ZaloPay
💳 Chuyển khoản ngân hàng

Bạn muốn thanh toán bằng cách nào?
`
}

// DeclineReply closes the conversation politely after a refusal.
func (r *Renderer) DeclineReply() string {
	return "Không sao! Nếu cần gì, cứ nhắn cho tôi nhé. Chúc bạn một mùa Tết vui vẻ! 🧧"
}

// TravelPrompt asks for a destination when a travel inquiry names none.
func (r *Renderer) TravelPrompt() string {
	return "Tuyệt! Bạn dự định đi đâu trong dịp Tết? Tôi sẽ báo giá bảo hiểm du lịch ngay cho bạn! ✈️"
}

// PricingPrompt lists quotable product lines when no rule recommends one.
func (r *Renderer) PricingPrompt() string {
	return "Bạn quan tâm đến loại bảo hiểm nào? Tôi có thể báo giá:\n- Du lịch\n- Xe máy\n- Sức khỏe gia đình\n- Tai nạn cá nhân"
}

// FallbackReply invites the customer to share their plans.
func (r *Renderer) FallbackReply() string {
	return "Tôi có thể giúp gì cho bạn? Hãy cho tôi biết về kế hoạch Tết của bạn! 🎊"
}

// ContextualReply frames the top recommendation's product card with the
// rule's reason.
func (r *Renderer) ContextualReply(rec Recommendation) string {
	return fmt.Sprintf(`
Tôi hiểu rồi!

%s, tôi nghĩ bạn nên xem xét:

%s
`, rec.Reason, r.ProductCard(rec.Products[0]))
}

// Reply dispatches user text to the matching canned reply. The branch order
// follows intent priority: claim, then travel, then pricing, then
// affirmative, then negative, then a needs-based contextual reply.
func (r *Renderer) Reply(p profile.CustomerProfile, text string) string {
	tags := r.classifier.Classify(text)
	primary, ok := intent.Primary(tags)
	if !ok {
		return r.needsReply(p)
	}

	switch primary {
	case intent.TagClaim:
		return r.ClaimFastTrack()
	case intent.TagTravel:
		if dest, found := ExtractDestination(text); found {
			return r.QuickQuote(dest, DefaultQuoteDays)
		}
		return r.TravelPrompt()
	case intent.TagPricing:
		if recs := AnalyzeNeeds(p); len(recs) > 0 {
			return r.ProductCard(recs[0].Products[0])
		}
		return r.PricingPrompt()
	case intent.TagAffirmative:
		return r.PaymentReply()
	case intent.TagNegative:
		return r.DeclineReply()
	default:
		return r.needsReply(p)
	}
}

func (r *Renderer) needsReply(p profile.CustomerProfile) string {
	if recs := AnalyzeNeeds(p); len(recs) > 0 {
		return r.ContextualReply(recs[0])
	}
	return r.FallbackReply()
}

// titleCase upper-cases the first rune of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
