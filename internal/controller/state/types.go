package state

import "github.com/Freeeeeet/clinic_bot/internal/controller/callbacks/callbacktypes"

// UserState текущий шаг диалога пользователя
type UserState = callbacktypes.UserState

const (
	StateNone UserState = "" // Нет активного диалога

	// Вход и регистрация
	StateLoginEmail       UserState = "login_email"
	StateLoginPassword    UserState = "login_password"
	StateRegisterName     UserState = "register_name"
	StateRegisterEmail    UserState = "register_email"
	StateRegisterPassword UserState = "register_password"
	StateRegisterGender   UserState = "register_gender"
	StateRegisterBirthday UserState = "register_birthday"
	StateRegisterPhone    UserState = "register_phone"
	StateRegisterAddress  UserState = "register_address"
	StateForgotEmail      UserState = "forgot_email"
	StateResetToken       UserState = "reset_token"
	StateResetPassword    UserState = "reset_password"

	// Поиск врача
	StateFindDoctorKeyword UserState = "find_doctor_keyword"

	// Запись на приём
	StateBookingReason UserState = "booking_reason"

	// Профили
	StateProfilePhone      UserState = "profile_phone"
	StateProfileAddress    UserState = "profile_address"
	StateDoctorDescription UserState = "doctor_description"
	StateDoctorDegree      UserState = "doctor_degree"

	// Врач: завершение приёма и история
	StateCompleteDiagnosis    UserState = "complete_diagnosis"
	StateCompletePrescription UserState = "complete_prescription"
	StateHistoryKeyword       UserState = "history_keyword"
	StateHistoryFrom          UserState = "history_from"
	StateHistoryTo            UserState = "history_to"

	// Администратор
	StateAdminAppointmentsKeyword UserState = "admin_appointments_keyword"
	StateAdminAppointmentsDate    UserState = "admin_appointments_date"
	StateAdminUsersKeyword        UserState = "admin_users_keyword"
	StateClinicName               UserState = "clinic_name"
	StateClinicAddress            UserState = "clinic_address"
	StateSpecialtyName            UserState = "specialty_name"
	StateSpecialtyDescription     UserState = "specialty_description"
	StateClinicEdit               UserState = "clinic_edit"
	StateSpecialtyEdit            UserState = "specialty_edit"
	StateDoctorEdit               UserState = "doctor_edit"
	StateDoctorNewName            UserState = "doctor_new_name"
	StateDoctorNewEmail           UserState = "doctor_new_email"
	StateDoctorNewPassword        UserState = "doctor_new_password"
	StateDoctorNewPrice           UserState = "doctor_new_price"
	StateUserEdit                 UserState = "user_edit"
	StateUserNewName              UserState = "user_new_name"
	StateUserNewEmail             UserState = "user_new_email"
	StateUserNewPassword          UserState = "user_new_password"
)

// UserData хранит шаг диалога и данные экранов пользователя
type UserData struct {
	State UserState
	Data  map[string]interface{} // Данные диалога и копии списков экранов
}
