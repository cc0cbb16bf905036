package constant

// Channel identifies a notification delivery channel.
type Channel string

const (
	ChannelEmail   Channel = "email"
	ChannelSMS     Channel = "sms"
	ChannelWebsite Channel = "website"
)

// Channels lists every delivery channel in dispatch order.
// The dispatcher iterates this slice, so adding a channel means adding
// one constant here plus one sender implementation.
var Channels = []Channel{ChannelEmail, ChannelSMS, ChannelWebsite}

func (c Channel) String() string {
	return string(c)
}
