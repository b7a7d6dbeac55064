package news

import "time"

// Demo is the built-in feed. Its items are dated relative to the day Now
// returns, so the feed always looks current.
type Demo struct {
	Now func() time.Time
}

// Default returns the built-in feed on the wall clock.
func Default() Demo {
	return Demo{Now: time.Now}
}

func (d Demo) Items() []Item {
	now := d.Now()
	today, yesterday, twoDaysAgo := day(now, 0), day(now, 1), day(now, 2)

	return []Item{
		{
			ID:      "n1",
			Title:   "نتفليكس تعلن عن مسلسل جديد بعنوان 'الحقيقة المرة'",
			Date:    today,
			Image:   "https://media.elcinema.com/uploads/_640x_55d99651b5e453286e5e73e81d41aa95a24e3cd48390bfac7c916d0baf9d80c4.jpg",
			Summary: "أعلنت منصة نتفليكس عن مسلسل جديد بعنوان 'الحقيقة المرة' من بطولة نخبة من النجوم العرب.",
			Content: "أعلنت منصة نتفليكس اليوم عن إنتاج مسلسل درامي جديد بعنوان 'الحقيقة المرة' من بطولة نخبة من النجوم العرب. المسلسل يتناول قصة صحفية شابة تكشف فسادًا كبيرًا في إحدى المؤسسات الحكومية، مما يعرض حياتها للخطر. ومن المتوقع أن يبدأ عرض المسلسل في النصف الثاني من العام الجاري على المنصة.",
			Source:  "نتفليكس",
		},
		{
			ID:      "n2",
			Title:   "فيلم 'نوفوكين' يحقق إيرادات قياسية في أسبوعه الأول",
			Date:    yesterday,
			Image:   "https://media.elcinema.com/uploads/_640x_cf7f705030b0c4f682dd9757bd11f26a0ae667cc08c7932a935f4e14b8fd4e6a.jpg",
			Summary: "حقق فيلم 'نوفوكين' إيرادات قياسية في شباك التذاكر العربي خلال أسبوعه الأول من العرض.",
			Content: "حقق فيلم 'نوفوكين' إيرادات قياسية في شباك التذاكر العربي خلال أسبوعه الأول من العرض، متجاوزًا توقعات النقاد والمحللين. الفيلم الذي يتناول قصة طبيب أسنان يجد نفسه متورطًا في سلسلة من الأحداث المشوقة، نال استحسان الجمهور والنقاد على حد سواء، وحصل على تقييم 8.5/10 على موقع IMDb العالمي.",
			Source:  "موقع السينما العربية",
		},
		{
			ID:      "n3",
			Title:   "بدء تصوير الجزء الثاني من مسلسل 'هوجان'",
			Date:    yesterday,
			Image:   "https://media.elcinema.com/uploads/_640x_e702117202ed8a289758b591c3b57bfeeccc8045e8eb9c1431981da47df67f23.jpg",
			Summary: "بدأ فريق عمل مسلسل 'هوجان' تصوير الجزء الثاني من العمل الدرامي الناجح.",
			Content: "بدأ فريق عمل مسلسل 'هوجان' تصوير الجزء الثاني من العمل الدرامي الناجح، بعد النجاح الكبير الذي حققه الجزء الأول. وصرح مخرج العمل بأن الجزء الثاني سيكون أكثر إثارة وتشويقًا، مع انضمام نجوم جدد للعمل. ومن المتوقع عرض المسلسل في رمضان المقبل.",
			Source:  "صحيفة الأخبار اليومية",
		},
		{
			ID:      "n4",
			Title:   "عرض فيلم 'فرسان التو' في مهرجان القاهرة السينمائي",
			Date:    twoDaysAgo,
			Image:   "https://m.media-amazon.com/images/M/MV5BMGM3ZWZmYTUtNDc0Ny00YWZjLWI5ZGYtNzhjZDE0NjQ4Y2I1XkEyXkFqcGdeQXVyMTU1MTY5NTk@._V1_.jpg",
			Summary: "تم اختيار فيلم 'فرسان التو' للمشاركة في المسابقة الرسمية لمهرجان القاهرة السينمائي في دورته القادمة.",
			Content: "تم اختيار فيلم 'فرسان التو' للمشاركة في المسابقة الرسمية لمهرجان القاهرة السينمائي في دورته القادمة. الفيلم الذي يروي قصة عائلة مافيا إيطالية أمريكية تم ترشيحه من قبل لجنة التحكيم للمنافسة على جائزة أفضل فيلم. وعبر مخرج الفيلم عن سعادته بهذا الاختيار، مؤكدًا أن المشاركة في المهرجان تعد إضافة مهمة للعمل.",
			Source:  "مهرجان القاهرة السينمائي",
		},
		{
			ID:      "n5",
			Title:   "الإعلان عن موعد عرض فيلم 'عميل الكوبرا'",
			Date:    twoDaysAgo,
			Image:   "https://media.elcinema.com/uploads/_640x_cf7f705030b0c4f682dd9757bd11f26a0ae667cc08c7932a935f4e14b8fd4e6a.jpg",
			Summary: "أعلنت الشركة المنتجة لفيلم 'عميل الكوبرا' عن موعد طرحه في دور العرض السينمائية.",
			Content: "أعلنت الشركة المنتجة لفيلم 'عميل الكوبرا' عن موعد طرحه في دور العرض السينمائية في جميع أنحاء الوطن العربي بدءًا من الشهر المقبل. الفيلم من بطولة نجم مصري شهير، ويتناول قصة ضابط شرطة يتورط في مؤامرة دولية تهدد أمن البلاد. وأكدت الشركة المنتجة أن الفيلم سيتوفر أيضًا للمشاهدة عبر المنصات الرقمية بعد شهرين من عرضه السينمائي.",
			Source:  "الشركة المنتجة",
		},
	}
}
