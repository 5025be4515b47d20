package public

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/common/keyboard"
)

// HandleSpecialties список специальностей
func HandleSpecialties(hc *common.HandlerContext, _ common.Params) {
	specialties, err := hc.Handler.Directory.Specialties(hc.Ctx)
	if err != nil {
		common.HandleError(hc, err, "list_specialties", "Không tải được danh sách chuyên khoa.")
		return
	}
	if len(specialties) == 0 {
		hc.Show(common.BuildEmptyScreen("🏷 Chuyên khoa", "Chưa có chuyên khoa nào.", "/"))
		return
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(specialties))
	for _, s := range specialties {
		buttons = append(buttons, keyboard.Button(formatting.Truncate(s.Name, 30), common.Path("specialty", s.ID)))
	}

	kb := keyboard.NewBuilder().Grid(buttons, 2).AddHomeButton().Build()
	hc.Show("🏷 <b>Chuyên khoa</b>\n\nChọn chuyên khoa để xem danh sách bác sĩ:", kb)
}

// HandleSpecialtyDetails специальность и её врачи
func HandleSpecialtyDetails(hc *common.HandlerContext, p common.Params) {
	id, err := p.Int64("id")
	if err != nil {
		common.HandleError(hc, err, "specialty_details", "")
		return
	}

	specialty, doctors, err := hc.Handler.Directory.SpecialtyDetails(hc.Ctx, id)
	if err != nil {
		common.HandleError(hc, err, "specialty_details", "Không tải được thông tin chuyên khoa.")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏷 <b>%s</b>\n", formatting.Escape(specialty.Name))
	if specialty.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", formatting.Escape(formatting.Truncate(specialty.Description, 800)))
	}

	kb := keyboard.NewBuilder()
	if len(doctors) == 0 {
		b.WriteString("\n📭 Chưa có bác sĩ thuộc chuyên khoa này.")
	} else {
		fmt.Fprintf(&b, "\n👨‍⚕️ Bác sĩ (%d):", len(doctors))
		for _, d := range doctors {
			kb.Row(keyboard.Button(
				fmt.Sprintf("%s · %s", formatting.Truncate(d.FullName, 30), formatting.FormatPrice(d.Price)),
				common.Path("doctors", d.DoctorID),
			))
		}
	}
	kb.AddBackAndHome("/specialties")

	hc.Show(b.String(), kb.Build())
}
