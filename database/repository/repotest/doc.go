// Package repotest provides in-memory repositories for service and handler tests.
package repotest

import (
	appointmentRepo "clinichub/database/repository/appointment"
	doctorRepo "clinichub/database/repository/doctor"
	notificationRepo "clinichub/database/repository/notification"
	reportRepo "clinichub/database/repository/report"
	reviewRepo "clinichub/database/repository/review"
	serviceRepo "clinichub/database/repository/service"
	userRepo "clinichub/database/repository/user"
)

var (
	_ userRepo.UserRepository                 = (*Users)(nil)
	_ doctorRepo.DoctorRepository             = (*Doctors)(nil)
	_ serviceRepo.ServiceRepository           = (*Services)(nil)
	_ appointmentRepo.AppointmentRepository   = (*Appointments)(nil)
	_ notificationRepo.NotificationRepository = (*Notifications)(nil)
	_ reviewRepo.ReviewRepository             = (*Reviews)(nil)
	_ reportRepo.ReportRepository             = (*Reports)(nil)
)
