package public

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/search"
)

const (
	findDoctorPath     = "/find-doctor"
	findDoctorCriteria = "find_doctor_criteria"
	doctorsPageSize    = 5
)

// FilterLabels подписи выбранных фильтров
type FilterLabels struct {
	Specialty string
	Clinic    string
}

// HandleFindDoctor список врачей с фильтрами. ?q= задаёт ключевое слово.
func HandleFindDoctor(hc *common.HandlerContext, p common.Params) {
	if q, ok := p.Query["q"]; ok {
		common.UpdateCriteria(hc, findDoctorCriteria, func(c *search.Criteria) {
			c.Keyword = strings.TrimSpace(strings.Join(q, " "))
		})
	}
	ShowFindDoctor(hc, p.Page())
}

// ShowFindDoctor выводит страницу результатов поиска
func ShowFindDoctor(hc *common.HandlerContext, page int) {
	criteria := common.Criteria(hc, findDoctorCriteria)

	doctors, err := hc.Handler.Directory.FindDoctors(hc.Ctx, criteria)
	if err != nil {
		common.HandleError(hc, err, "find_doctors", "Không tải được danh sách bác sĩ.")
		return
	}

	labels := filterLabels(hc, criteria)
	text, kb := BuildFindDoctorScreen(doctors, criteria, labels, page)
	hc.Show(text, kb)
}

// BuildFindDoctorScreen экран результатов поиска врачей
func BuildFindDoctorScreen(doctors []model.Doctor, criteria search.Criteria, labels FilterLabels, page int) (string, *models.InlineKeyboardMarkup) {
	var b strings.Builder
	b.WriteString("🔍 <b>Tìm bác sĩ</b>\n")

	if criteria.Keyword != "" {
		fmt.Fprintf(&b, "🔎 Từ khóa: <i>%s</i>\n", formatting.Escape(criteria.Keyword))
	}
	if labels.Specialty != "" {
		fmt.Fprintf(&b, "🏷 Chuyên khoa: %s\n", formatting.Escape(labels.Specialty))
	}
	if labels.Clinic != "" {
		fmt.Fprintf(&b, "🏥 Phòng khám: %s\n", formatting.Escape(labels.Clinic))
	}

	pageItems, page, totalPages := common.Paginate(doctors, page, doctorsPageSize)

	kb := keyboard.NewBuilder()
	if len(doctors) == 0 {
		b.WriteString("\n📭 Không tìm thấy bác sĩ phù hợp.")
	} else {
		fmt.Fprintf(&b, "\nTìm thấy %d bác sĩ:\n\n", len(doctors))
		for _, d := range pageItems {
			b.WriteString(formatting.FormatDoctorShort(d))
			b.WriteString("\n\n")
			kb.Row(keyboard.Button("👨‍⚕️ "+formatting.Truncate(d.FullName, 40), common.Path("doctors", d.DoctorID)))
		}
	}

	kb.AddPagination(common.PagePrefix(findDoctorPath), page, totalPages)
	kb.Row(
		keyboard.Button("🔎 Từ khóa", "/find-doctor/keyword"),
		keyboard.Button("🏷 Chuyên khoa", "/find-doctor/specialty"),
		keyboard.Button("🏥 Phòng khám", "/find-doctor/clinic"),
	)
	if !criteria.IsEmpty() {
		kb.Row(keyboard.Button("♻️ Xóa bộ lọc", "/find-doctor/reset"))
	}
	kb.AddHomeButton()

	return strings.TrimRight(b.String(), "\n"), kb.Build()
}

// filterLabels названия выбранных специальности и клиники
func filterLabels(hc *common.HandlerContext, criteria search.Criteria) FilterLabels {
	var labels FilterLabels
	if id, err := strconv.ParseInt(criteria.SpecialtyID, 10, 64); err == nil {
		if specialties, err := hc.Handler.Directory.Specialties(hc.Ctx); err == nil {
			for _, s := range specialties {
				if s.ID == id {
					labels.Specialty = s.Name
				}
			}
		}
	}
	if id, err := strconv.ParseInt(criteria.ClinicID, 10, 64); err == nil {
		if clinic, err := hc.Handler.Directory.Clinic(hc.Ctx, id); err == nil && clinic != nil {
			labels.Clinic = clinic.Name
		}
	}
	return labels
}

// HandleFindDoctorKeywordStart запрашивает ключевое слово
func HandleFindDoctorKeywordStart(hc *common.HandlerContext, _ common.Params) {
	common.Prompt(hc, state.StateFindDoctorKeyword,
		"🔎 Tìm theo từ khóa",
		"Nhập tên bác sĩ, chuyên khoa hoặc phòng khám (có thể gõ không dấu):",
		findDoctorPath)
}

// HandleFindDoctorKeyword получает ключевое слово из диалога
func HandleFindDoctorKeyword(hc *common.HandlerContext, text string) {
	hc.EndDialog()
	common.UpdateCriteria(hc, findDoctorCriteria, func(c *search.Criteria) {
		c.Keyword = strings.TrimSpace(text)
	})
	ShowFindDoctor(hc, 0)
}

// HandleFindDoctorReset сбрасывает фильтры
func HandleFindDoctorReset(hc *common.HandlerContext, _ common.Params) {
	hc.SetData(findDoctorCriteria, search.Criteria{})
	hc.Answer("♻️ Đã xóa bộ lọc")
	ShowFindDoctor(hc, 0)
}

// HandleFindDoctorSpecialties выбор специальности для фильтра
func HandleFindDoctorSpecialties(hc *common.HandlerContext, _ common.Params) {
	specialties, err := hc.Handler.Directory.Specialties(hc.Ctx)
	if err != nil {
		common.HandleError(hc, err, "list_specialties", "Không tải được danh sách chuyên khoa.")
		return
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(specialties)+1)
	buttons = append(buttons, keyboard.Button("Tất cả", "/find-doctor/specialty/all"))
	for _, s := range specialties {
		buttons = append(buttons, keyboard.Button(formatting.Truncate(s.Name, 30), common.Path("find-doctor", "specialty", s.ID)))
	}

	kb := keyboard.NewBuilder().Grid(buttons, 2).AddBackButton(findDoctorPath).Build()
	hc.Show("🏷 <b>Chọn chuyên khoa</b>", kb)
}

// HandleFindDoctorSetSpecialty задаёт фильтр специальности
func HandleFindDoctorSetSpecialty(hc *common.HandlerContext, p common.Params) {
	id := p.String("id")
	common.UpdateCriteria(hc, findDoctorCriteria, func(c *search.Criteria) {
		c.SpecialtyID = allToEmpty(id)
	})
	ShowFindDoctor(hc, 0)
}

// HandleFindDoctorClinics выбор клиники для фильтра
func HandleFindDoctorClinics(hc *common.HandlerContext, _ common.Params) {
	clinics, err := hc.Handler.Directory.Clinics(hc.Ctx)
	if err != nil {
		common.HandleError(hc, err, "list_clinics", "Không tải được danh sách phòng khám.")
		return
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(clinics)+1)
	buttons = append(buttons, keyboard.Button("Tất cả", "/find-doctor/clinic/all"))
	for _, c := range clinics {
		buttons = append(buttons, keyboard.Button(formatting.Truncate(c.Name, 30), common.Path("find-doctor", "clinic", c.ID)))
	}

	kb := keyboard.NewBuilder().Grid(buttons, 2).AddBackButton(findDoctorPath).Build()
	hc.Show("🏥 <b>Chọn phòng khám</b>", kb)
}

// HandleFindDoctorSetClinic задаёт фильтр клиники
func HandleFindDoctorSetClinic(hc *common.HandlerContext, p common.Params) {
	id := p.String("id")
	common.UpdateCriteria(hc, findDoctorCriteria, func(c *search.Criteria) {
		c.ClinicID = allToEmpty(id)
	})
	ShowFindDoctor(hc, 0)
}

// HandleDoctorDetails карточка врача
func HandleDoctorDetails(hc *common.HandlerContext, p common.Params) {
	id, err := p.Int64("id")
	if err != nil {
		common.HandleError(hc, err, "doctor_details", "")
		return
	}

	doctor, err := hc.Handler.Directory.Doctor(hc.Ctx, id)
	if err != nil {
		common.HandleError(hc, err, "doctor_details", "Không tải được thông tin bác sĩ.")
		return
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📅 Đặt lịch khám", common.Path("booking", doctor.DoctorID))).
		AddBackAndHome(findDoctorPath).
		Build()
	hc.Show(formatting.FormatDoctorInfo(*doctor), kb)
}

func allToEmpty(id string) string {
	if id == "all" {
		return ""
	}
	return id
}
