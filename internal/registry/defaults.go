package registry

import "catchup-feed/internal/domain/entity"

// DefaultFeeds is the curated seed table used when no override file is
// configured. It covers every entity.Category at least once, which
// satisfies the registry's startup invariant on its own.
var DefaultFeeds = []entity.FeedSource{
	{Name: "Yonhap News", Category: entity.CategoryGeneral, RSSURL: "https://www.yna.co.kr/RSS/news.xml"},
	{Name: "Yonhap News - Politics", Category: entity.CategoryPolitics, RSSURL: "https://www.yna.co.kr/RSS/politics.xml"},
	{Name: "Yonhap News - Economy", Category: entity.CategoryEconomy, RSSURL: "https://www.yna.co.kr/RSS/economy.xml"},
	{Name: "Yonhap News - Society", Category: entity.CategorySociety, RSSURL: "https://www.yna.co.kr/RSS/society.xml"},
	{Name: "Yonhap News - Culture", Category: entity.CategoryCulture, RSSURL: "https://www.yna.co.kr/RSS/culture.xml"},
	{Name: "Yonhap News - International", Category: entity.CategoryInternational, RSSURL: "https://www.yna.co.kr/RSS/international.xml"},
	{Name: "Yonhap News - Sports", Category: entity.CategorySports, RSSURL: "https://www.yna.co.kr/RSS/sports.xml"},
	{Name: "Yonhap News - Entertainment", Category: entity.CategoryEntertainment, RSSURL: "https://www.yna.co.kr/RSS/entertainment.xml"},
	{Name: "ETNews", Category: entity.CategoryIT, RSSURL: "https://www.etnews.com/rss/it.xml"},
	{Name: "ZDNet Korea", Category: entity.CategoryIT, RSSURL: "https://zdnet.co.kr/news/news_xml.asp"},
	{Name: "KBS News", Category: entity.CategoryBroadcast, RSSURL: "https://news.kbs.co.kr/rss/rss.xml"},
	{Name: "MBC News", Category: entity.CategoryBroadcast, RSSURL: "https://imnews.imbc.com/rss/news/news_00.xml"},
	{Name: "Korea.kr", Category: entity.CategoryGovernment, RSSURL: "https://www.korea.kr/rss/dept.xml"},
}
