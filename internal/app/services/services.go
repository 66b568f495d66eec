package services

// Services defined in this package:
// - UserService: account registration, role management and role checks
// - ClassService: catalog listings, partial updates and moderation
// - CartService: selected-class entries per student
// - InstructorService: instructor profiles with catalog totals
// - SettlementService: payment intents, settlement and enrollment history
